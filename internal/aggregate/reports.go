package aggregate

import (
	"strings"

	"github.com/carenote/carenote/internal/history"
	"github.com/carenote/carenote/internal/platform/fhir"
	"github.com/carenote/carenote/pkg/fhirmodels"
)

// windowOptions is the shared option set for every time-window filter.
var windowOptions = []string{WindowAll, WindowWeek, WindowMonth, Window3Months, Window6Months, WindowYear}

// Report version filter values.
const (
	VersionLatest = "latest"
	VersionAll    = "all"
)

// panel is one renderable report-like unit: a diagnostic report with its
// result observations, or a synthetic group of orphan observations.
type panel struct {
	Name  string
	Date  string
	Lines []string
}

// imagingCategoryCodes mark a diagnostic report as imaging rather than lab.
var imagingCategoryCodes = map[string]struct{}{
	fhirmodels.ReportSectionRadiology: {},
	fhirmodels.ReportSectionImaging:   {},
}

// isImagingReport classifies a report by its category codings: the RAD/IMG
// service-section codes, or a category label mentioning imaging or radiology.
func isImagingReport(r *fhir.DiagnosticReport) bool {
	for i := range r.Category {
		for _, coding := range r.Category[i].Coding {
			if _, ok := imagingCategoryCodes[strings.ToUpper(coding.Code)]; ok {
				return true
			}
		}
		label := strings.ToLower(fhir.ConceptText(&r.Category[i]))
		if strings.Contains(label, "imaging") || strings.Contains(label, "radiology") {
			return true
		}
	}
	return false
}

// reportPanels converts the dataset's diagnostic reports of one kind (imaging
// or lab) into panels, resolving each report's result observations through
// the index. Lab panels also include the orphan groups as synthetic panels.
func reportPanels(in Input, imaging bool) []panel {
	if in.Dataset == nil {
		return nil
	}
	resultsByReport := make(map[string][]fhir.Observation)
	if in.Index != nil {
		for _, o := range in.Dataset.Observations {
			if reportID, ok := in.Index.ObservationReports[o.ID]; ok {
				resultsByReport[reportID] = append(resultsByReport[reportID], o)
			}
		}
	}

	var panels []panel
	for i := range in.Dataset.DiagnosticReports {
		r := &in.Dataset.DiagnosticReports[i]
		if isImagingReport(r) != imaging {
			continue
		}
		p := panel{Name: fhir.ConceptText(r.Code), Date: r.EffectiveDate()}
		for _, o := range resultsByReport[r.ID] {
			p.Lines = append(p.Lines, resultLine(&o))
		}
		if r.Conclusion != "" {
			p.Lines = append(p.Lines, "  Conclusion: "+r.Conclusion)
		}
		panels = append(panels, p)
	}
	if !imaging && in.Index != nil {
		for _, g := range in.Index.OrphanGroups {
			p := panel{Name: g.Name, Date: g.Date}
			for i := range g.Members {
				p.Lines = append(p.Lines, resultLine(&g.Members[i]))
			}
			panels = append(panels, p)
		}
	}
	return panels
}

// filterPanels applies the shared windowed-latest pipeline: time window
// first, then latest-per-name reduction when version is "latest".
func filterPanels(panels []panel, window, version string, in Input) []panel {
	var kept []panel
	for _, p := range panels {
		if InWindow(p.Date, window, in.Now) {
			kept = append(kept, p)
		}
	}
	if version == VersionLatest {
		kept = LatestByKey(kept,
			func(p panel) string { return p.Name },
			func(p panel) string { return p.Date })
	}
	return kept
}

// narratePanels renders panels under one section title.
func narratePanels(title string, panels []panel) []Section {
	if len(panels) == 0 {
		return emptySection(title)
	}
	var items []string
	for _, p := range panels {
		head := "- " + p.Name
		if day := fhir.FormatDay(p.Date); day != "" {
			head += " (" + day + ")"
		}
		items = append(items, head)
		items = append(items, p.Lines...)
	}
	return []Section{{Title: title, Items: items}}
}

// resultLine renders one result observation as an indented panel line:
// name, value, interpretation, reference range.
func resultLine(o *fhir.Observation) string {
	line := "  " + fhir.ConceptText(o.Code)
	if value := history.DisplayValue(o); value != "" {
		line += ": " + value
	}
	if interp := fhir.FormatInterpretation(o.Interpretation); interp != "" {
		line += " (" + interp + ")"
	}
	if rr := fhir.FormatReferenceRange(o.ReferenceRange); rr != "" {
		line += " [ref: " + rr + "]"
	}
	return line
}
