package aggregate

import (
	"strings"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// proceduresCategory lists performed procedures, windowed, optionally
// reduced to the latest procedure per name.
type proceduresCategory struct{}

func (proceduresCategory) ID() string    { return "procedures" }
func (proceduresCategory) Label() string { return "Procedures" }
func (proceduresCategory) Group() string { return "Clinical" }
func (proceduresCategory) Order() int    { return 70 }

func (proceduresCategory) Filters() []FilterDecl {
	return []FilterDecl{
		{
			Key:     "procedureWindow",
			Label:   "Procedure window",
			Type:    FilterSelect,
			Options: windowOptions,
			Default: WindowAll,
		},
		{
			Key:     "procedureVersion",
			Label:   "Procedure version",
			Type:    FilterSelect,
			Options: []string{VersionAll, VersionLatest},
			Default: VersionAll,
		},
	}
}

func (c proceduresCategory) Count(in Input) int {
	return len(c.filtered(in))
}

func (c proceduresCategory) Narrate(in Input) []Section {
	kept := c.filtered(in)
	if len(kept) == 0 {
		return emptySection("Procedures:")
	}
	items := make([]string, 0, len(kept))
	for _, p := range kept {
		items = append(items, procedureLine(p))
	}
	return []Section{{Title: "Procedures:", Items: items}}
}

// filtered applies the window first, then the latest-per-name reduction.
func (proceduresCategory) filtered(in Input) []fhir.Procedure {
	if in.Dataset == nil {
		return nil
	}
	window := in.Filters.Get("procedureWindow", WindowAll)
	version := in.Filters.Get("procedureVersion", VersionAll)
	var kept []fhir.Procedure
	for _, p := range in.Dataset.Procedures {
		if InWindow(p.PerformedDateTime, window, in.Now) {
			kept = append(kept, p)
		}
	}
	if version == VersionLatest {
		kept = LatestByKey(kept,
			func(p fhir.Procedure) string { return fhir.ConceptText(p.Code) },
			func(p fhir.Procedure) string { return p.PerformedDateTime })
	}
	return kept
}

func procedureLine(p fhir.Procedure) string {
	line := "- " + fhir.ConceptText(p.Code)
	if day := fhir.FormatDay(p.PerformedDateTime); day != "" {
		line += " (" + day + ")"
	}
	if detail := procedureDetail(&p); detail != "" {
		line += ": " + detail
	}
	if p.Status != "" {
		line += " [" + p.Status + "]"
	}
	return line
}

// procedureDetail resolves the most informative free text on a procedure:
// outcome, then joined notes.
func procedureDetail(p *fhir.Procedure) string {
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
	return strings.Join(notes, "; ")
}
