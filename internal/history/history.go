package history

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// Item is one dated data point for a given observation code. Value is the
// already-formatted display value; Numeric carries the raw number when the
// source was a quantity, for charting.
type Item struct {
	ID             string   `json:"id"`
	Date           string   `json:"date,omitempty"`
	Value          string   `json:"value"`
	Numeric        *float64 `json:"numeric,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Status         string   `json:"status,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
	ReferenceRange string   `json:"referenceRange,omitempty"`
	ReportName     string   `json:"reportName,omitempty"`
}

// Point is one dated value within a single component's series.
type Point struct {
	Date           string   `json:"date,omitempty"`
	Value          *float64 `json:"value,omitempty"`
	ValueText      string   `json:"valueText,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Status         string   `json:"status,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
	ReferenceRange string   `json:"referenceRange,omitempty"`
}

// Series is the per-component view of a composite observation's history,
// one entry per declared component name, for multi-line charting.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// MatchesCode reports whether an observation's resolved code text or any of
// its coding codes equals the target code.
func MatchesCode(c *fhir.CodeableConcept, code string) bool {
	if c == nil || code == "" {
		return false
	}
	if fhir.ConceptText(c) == code {
		return true
	}
	for _, coding := range c.Coding {
		if coding.Code != "" && coding.Code == code {
			return true
		}
	}
	return false
}

// Simple builds the flat chronological history for one observation code:
// every matching observation plus every matching procedure, merged and
// sorted by date descending. Report names resolve through the index.
func Simple(observations []fhir.Observation, procedures []fhir.Procedure, idx *Index, code string) []Item {
	var items []Item
	for _, o := range observations {
		if !MatchesCode(o.Code, code) {
			continue
		}
		item := Item{
			ID:             o.ID,
			Date:           o.EffectiveDate(),
			Status:         o.Status,
			Interpretation: fhir.FormatInterpretation(o.Interpretation),
			ReferenceRange: fhir.FormatReferenceRange(o.ReferenceRange),
		}
		if idx != nil {
			item.ReportName = idx.ReportNameFor(o.ID)
		}
		switch {
		case o.ValueQuantity != nil && o.ValueQuantity.Value != nil:
			item.Value = strconv.FormatFloat(*o.ValueQuantity.Value, 'f', -1, 64)
			v := *o.ValueQuantity.Value
			item.Numeric = &v
			item.Unit = o.ValueQuantity.Unit
		case o.ValueString != "":
			item.Value = o.ValueString
		case len(o.Component) > 0:
			item.Value = CompositeValue(&o)
		}
		items = append(items, item)
	}
	for _, p := range procedures {
		if !MatchesCode(p.Code, code) {
			continue
		}
		items = append(items, Item{
			ID:     p.ID,
			Date:   p.PerformedDateTime,
			Value:  procedureValue(&p),
			Status: p.Status,
		})
	}
	sortByDateDesc(items, func(it Item) string { return it.Date })
	return items
}

// Component builds per-component series for a composite observation code.
// The declared component order is honored except that a systolic component
// always precedes a diastolic one, regardless of input order.
func Component(observations []fhir.Observation, code string, names []string) []Series {
	ordered := OrderComponents(names)
	series := make([]Series, len(ordered))
	for i, name := range ordered {
		series[i].Name = name
	}
	for _, o := range observations {
		if !MatchesCode(o.Code, code) {
			continue
		}
		for i, name := range ordered {
			comp := findComponent(&o, name)
			if comp == nil {
				continue
			}
			pt := Point{
				Date:           o.EffectiveDate(),
				Status:         o.Status,
				Interpretation: fhir.FormatInterpretation(comp.Interpretation),
				ReferenceRange: fhir.FormatReferenceRange(comp.ReferenceRange),
			}
			if comp.ValueQuantity != nil && comp.ValueQuantity.Value != nil {
				v := *comp.ValueQuantity.Value
				pt.Value = &v
				pt.Unit = comp.ValueQuantity.Unit
			} else {
				pt.ValueText = comp.ValueString
			}
			series[i].Points = append(series[i].Points, pt)
		}
	}
	for i := range series {
		sortByDateDesc(series[i].Points, func(p Point) string { return p.Date })
	}
	return series
}

// Composite builds the single-line view of a composite observation code:
// all declared components of each matching observation merged into one
// joined value like "120/80".
func Composite(observations []fhir.Observation, code string, names []string) []Item {
	ordered := OrderComponents(names)
	var items []Item
	for _, o := range observations {
		if !MatchesCode(o.Code, code) {
			continue
		}
		value := composeComponents(&o, ordered)
		if value == "" {
			continue
		}
		items = append(items, Item{
			ID:     o.ID,
			Date:   o.EffectiveDate(),
			Value:  value,
			Unit:   compositeUnit(&o, ordered),
			Status: o.Status,
		})
	}
	sortByDateDesc(items, func(it Item) string { return it.Date })
	return items
}

// OrderComponents returns the component names in display order. Declared
// order is kept except for the blood-pressure special case: a name
// containing "systolic" is always placed before one containing "diastolic".
func OrderComponents(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return componentRank(ordered[i]) < componentRank(ordered[j])
	})
	return ordered
}

func componentRank(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "systolic"):
		return 0
	case strings.Contains(lower, "diastolic"):
		return 1
	default:
		return 2
	}
}

// CompositeValue renders an observation's own components as one joined value
// in display order, e.g. "120/80".
func CompositeValue(o *fhir.Observation) string {
	return composeComponents(o, componentNames(o))
}

// DisplayValue renders an observation's value as a single narrative token:
// quantity with unit, plain string value, or the joined component value with
// the first component's unit appended.
func DisplayValue(o *fhir.Observation) string {
	if o.ValueQuantity != nil && o.ValueQuantity.Value != nil {
		return fhir.FormatQuantity(o.ValueQuantity)
	}
	if o.ValueString != "" {
		return o.ValueString
	}
	if len(o.Component) > 0 {
		names := componentNames(o)
		value := composeComponents(o, names)
		if value == "" {
			return ""
		}
		if unit := compositeUnit(o, names); unit != "" {
			return value + " " + unit
		}
		return value
	}
	return ""
}

// composeComponents joins the named components of one observation into a
// single display value, numeric components rounded to the nearest integer.
func composeComponents(o *fhir.Observation, names []string) string {
	var parts []string
	for _, name := range names {
		comp := findComponent(o, name)
		if comp == nil {
			continue
		}
		if comp.ValueQuantity != nil && comp.ValueQuantity.Value != nil {
			parts = append(parts, strconv.FormatInt(int64(math.Round(*comp.ValueQuantity.Value)), 10))
		} else if comp.ValueString != "" {
			parts = append(parts, comp.ValueString)
		}
	}
	return strings.Join(parts, "/")
}

// compositeUnit returns the unit of the first named component that has one.
func compositeUnit(o *fhir.Observation, names []string) string {
	for _, name := range names {
		if comp := findComponent(o, name); comp != nil && comp.ValueQuantity != nil && comp.ValueQuantity.Unit != "" {
			return comp.ValueQuantity.Unit
		}
	}
	return ""
}

// componentNames lists an observation's own component code names in source
// order with the systolic-first rule applied.
func componentNames(o *fhir.Observation) []string {
	names := make([]string, 0, len(o.Component))
	for i := range o.Component {
		names = append(names, fhir.ConceptText(o.Component[i].Code))
	}
	return OrderComponents(names)
}

func findComponent(o *fhir.Observation, name string) *fhir.ObservationComponent {
	for i := range o.Component {
		if fhir.ConceptText(o.Component[i].Code) == name {
			return &o.Component[i]
		}
	}
	return nil
}

// procedureValue resolves a procedure's display value: outcome text, then
// joined notes, then status.
func procedureValue(p *fhir.Procedure) string {
	if p.Outcome != nil {
		if text := fhir.ConceptText(p.Outcome); text != fhir.UnknownDisplay {
			return text
		}
	}
	var notes []string
	for _, n := range p.Note {
		if n.Text != "" {
			notes = append(notes, n.Text)
		}
	}
	if len(notes) > 0 {
		return strings.Join(notes, "; ")
	}
	return p.Status
}

// sortByDateDesc stably sorts items newest first; items without a parsable
// date sort oldest (last).
func sortByDateDesc[T any](items []T, dateOf func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := fhir.ParseDate(dateOf(items[i]))
		tj, _ := fhir.ParseDate(dateOf(items[j]))
		return ti.After(tj)
	})
}
