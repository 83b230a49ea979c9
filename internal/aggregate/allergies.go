package aggregate

import (
	"strings"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// allergiesCategory lists allergy and intolerance records. No filters: an
// inactive allergy is still worth surfacing in a clinical prompt.
type allergiesCategory struct{}

func (allergiesCategory) ID() string           { return "allergies" }
func (allergiesCategory) Label() string        { return "Allergies" }
func (allergiesCategory) Group() string        { return "Clinical" }
func (allergiesCategory) Order() int           { return 40 }
func (allergiesCategory) Filters() []FilterDecl { return nil }

func (allergiesCategory) Count(in Input) int {
	if in.Dataset == nil {
		return 0
	}
	return len(in.Dataset.Allergies)
}

func (c allergiesCategory) Narrate(in Input) []Section {
	if c.Count(in) == 0 {
		return emptySection("Allergies:")
	}
	items := make([]string, 0, len(in.Dataset.Allergies))
	for _, a := range in.Dataset.Allergies {
		items = append(items, allergyLine(a))
	}
	return []Section{{Title: "Allergies:", Items: items}}
}

func allergyLine(a fhir.AllergyIntolerance) string {
	line := "- " + fhir.ConceptText(a.Code)
	if a.Criticality != "" {
		line += " (criticality: " + a.Criticality + ")"
	}
	var reactions []string
	for _, r := range a.Reaction {
		for i := range r.Manifestation {
			if text := fhir.ConceptText(&r.Manifestation[i]); text != fhir.UnknownDisplay {
				reactions = append(reactions, text)
			}
		}
	}
	if len(reactions) > 0 {
		line += ", reactions: " + strings.Join(reactions, ", ")
	}
	return line
}
