package aggregate

import (
	"strconv"
	"strings"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// patientInfoCategory renders the patient's demographics block.
type patientInfoCategory struct{}

func (patientInfoCategory) ID() string           { return "patientInfo" }
func (patientInfoCategory) Label() string        { return "Patient Information" }
func (patientInfoCategory) Group() string        { return "Demographics" }
func (patientInfoCategory) Order() int           { return 10 }
func (patientInfoCategory) Filters() []FilterDecl { return nil }

// Count is 1 only when at least one demographic line renders, so it always
// matches what Narrate emits.
func (c patientInfoCategory) Count(in Input) int {
	if len(c.lines(in)) == 0 {
		return 0
	}
	return 1
}

func (c patientInfoCategory) Narrate(in Input) []Section {
	items := c.lines(in)
	if len(items) == 0 {
		return emptySection("Patient Information:")
	}
	return []Section{{Title: "Patient Information:", Items: items}}
}

func (patientInfoCategory) lines(in Input) []string {
	if in.Dataset == nil || in.Dataset.Patient == nil {
		return nil
	}
	p := in.Dataset.Patient
	var items []string
	if name := patientName(p); name != "" {
		items = append(items, "Name: "+name)
	}
	if p.Gender != "" {
		items = append(items, "Gender: "+p.Gender)
	}
	if p.BirthDate != "" {
		line := "Date of birth: " + p.BirthDate
		if t, ok := fhir.ParseDate(p.BirthDate); ok {
			years := in.Now.Year() - t.Year()
			if in.Now.YearDay() < t.YearDay() {
				years--
			}
			if years >= 0 {
				line += " (age " + strconv.Itoa(years) + ")"
			}
		}
		items = append(items, line)
	}
	return items
}

// patientName resolves a patient's display name: explicit text, then the
// first name entry's given+family parts joined with spaces.
func patientName(p *fhir.Patient) string {
	if len(p.Name) == 0 {
		return ""
	}
	n := p.Name[0]
	if n.Text != "" {
		return n.Text
	}
	parts := append([]string{}, n.Given...)
	if n.Family != "" {
		parts = append(parts, n.Family)
	}
	return strings.Join(parts, " ")
}
