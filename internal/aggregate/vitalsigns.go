package aggregate

import (
	"sort"

	"github.com/carenote/carenote/internal/history"
	"github.com/carenote/carenote/internal/platform/fhir"
)

// vitalSignsCategory emits one section per vital-sign type, windowed,
// reduced to the latest reading per type by default.
type vitalSignsCategory struct{}

func (vitalSignsCategory) ID() string    { return "vitalSigns" }
func (vitalSignsCategory) Label() string { return "Vital Signs" }
func (vitalSignsCategory) Group() string { return "Diagnostics" }
func (vitalSignsCategory) Order() int    { return 80 }

func (vitalSignsCategory) Filters() []FilterDecl {
	return []FilterDecl{
		{
			Key:     "vitalSignsWindow",
			Label:   "Vital signs window",
			Type:    FilterSelect,
			Options: windowOptions,
			Default: WindowAll,
		},
		{
			Key:     "vitalSignsVersion",
			Label:   "Vital signs version",
			Type:    FilterSelect,
			Options: []string{VersionLatest, VersionAll},
			Default: VersionLatest,
		},
	}
}

func (c vitalSignsCategory) Count(in Input) int {
	return len(c.filtered(in))
}

func (c vitalSignsCategory) Narrate(in Input) []Section {
	kept := c.filtered(in)
	if len(kept) == 0 {
		return emptySection("Vital Signs:")
	}

	// One section per vital type, types in first-seen order, readings
	// newest first within each.
	order := make(map[string]int)
	var sections []Section
	for _, o := range kept {
		name := fhir.ConceptText(o.Code)
		i, ok := order[name]
		if !ok {
			i = len(sections)
			order[name] = i
			sections = append(sections, Section{Title: name + ":"})
		}
		sections[i].Items = append(sections[i].Items, vitalLine(&o))
	}
	return sections
}

// filtered applies the window first, then the latest-per-type reduction,
// and finally a newest-first sort so section items read chronologically.
func (vitalSignsCategory) filtered(in Input) []fhir.Observation {
	if in.Dataset == nil {
		return nil
	}
	window := in.Filters.Get("vitalSignsWindow", WindowAll)
	version := in.Filters.Get("vitalSignsVersion", VersionLatest)
	var kept []fhir.Observation
	for _, o := range in.Dataset.VitalSigns {
		if InWindow(o.EffectiveDate(), window, in.Now) {
			kept = append(kept, o)
		}
	}
	if version == VersionLatest {
		return LatestByKey(kept,
			func(o fhir.Observation) string { return fhir.ConceptText(o.Code) },
			func(o fhir.Observation) string { return o.EffectiveDate() })
	}
	sort.SliceStable(kept, func(i, j int) bool {
		ti, _ := fhir.ParseDate(kept[i].EffectiveDate())
		tj, _ := fhir.ParseDate(kept[j].EffectiveDate())
		return ti.After(tj)
	})
	return kept
}

func vitalLine(o *fhir.Observation) string {
	line := "-"
	if day := fhir.FormatDay(o.EffectiveDate()); day != "" {
		line += " " + day + ":"
	}
	value := history.DisplayValue(o)
	if value == "" {
		value = fhir.UnknownDisplay
	}
	line += " " + value
	if interp := fhir.FormatInterpretation(o.Interpretation); interp != "" {
		line += " (" + interp + ")"
	}
	return line
}
