// Package history indexes observations against the diagnostic reports and
// procedures that reference them, and derives chronological trend series for
// a single observation code. Everything here is a pure transform over the
// dataset snapshot; nothing is mutated or cached between calls.
package history

import (
	"github.com/carenote/carenote/internal/platform/fhir"
)

// unknownDateKey is the group-key segment used when an orphan observation has
// no parsable date.
const unknownDateKey = "unknown"

// OrphanGroup is a synthetic panel built from observations that no diagnostic
// report references: sub-results measured in the same encounter, on the same
// calendar day, under the same code are shown together.
type OrphanGroup struct {
	Name         string
	Date         string
	EncounterRef string
	Members      []fhir.Observation
}

// Index is the bidirectional id index between diagnostic reports and their
// result observations, plus the grouped leftovers.
type Index struct {
	// ReportNames maps report id to the report's resolved display name.
	ReportNames map[string]string
	// ObservationReports maps observation id to the id of the report whose
	// result list references it.
	ObservationReports map[string]string
	// OrphanGroups holds observations referenced by no report, grouped by
	// (encounter, day, code), in first-seen order.
	OrphanGroups []OrphanGroup
}

// NewIndex builds the report/observation index for one aggregation pass.
func NewIndex(reports []fhir.DiagnosticReport, observations []fhir.Observation) *Index {
	idx := &Index{
		ReportNames:        make(map[string]string, len(reports)),
		ObservationReports: make(map[string]string),
	}
	for _, r := range reports {
		if r.ID == "" {
			continue
		}
		idx.ReportNames[r.ID] = fhir.ConceptText(r.Code)
		for _, ref := range r.Result {
			if obsID := fhir.ReferenceID(ref.Reference); obsID != "" {
				idx.ObservationReports[obsID] = r.ID
			}
		}
	}

	groups := make(map[string]int)
	for _, o := range observations {
		if _, claimed := idx.ObservationReports[o.ID]; claimed {
			continue
		}
		if emptyObservation(&o) {
			continue
		}
		key := orphanKey(&o)
		if i, ok := groups[key]; ok {
			idx.OrphanGroups[i].Members = append(idx.OrphanGroups[i].Members, o)
			continue
		}
		groups[key] = len(idx.OrphanGroups)
		idx.OrphanGroups = append(idx.OrphanGroups, OrphanGroup{
			Name:         fhir.ConceptText(o.Code),
			Date:         o.EffectiveDate(),
			EncounterRef: encounterRef(o.Encounter),
			Members:      []fhir.Observation{o},
		})
	}
	return idx
}

// ReportNameFor resolves the display name of the report that references the
// given observation, or "" when the observation is an orphan.
func (idx *Index) ReportNameFor(observationID string) string {
	reportID, ok := idx.ObservationReports[observationID]
	if !ok {
		return ""
	}
	return idx.ReportNames[reportID]
}

// emptyObservation reports whether an orphan carries no measurable content:
// no components, no member references, no scalar value. Such records are
// structurally present but clinically empty and are dropped.
func emptyObservation(o *fhir.Observation) bool {
	return len(o.Component) == 0 && len(o.HasMember) == 0 &&
		(o.ValueQuantity == nil || o.ValueQuantity.Value == nil) && o.ValueString == ""
}

// orphanKey builds the composite grouping key encounter|day|code.
func orphanKey(o *fhir.Observation) string {
	day := fhir.FormatDay(o.EffectiveDate())
	if day == "" {
		day = unknownDateKey
	}
	return encounterRef(o.Encounter) + "|" + day + "|" + fhir.ConceptText(o.Code)
}

func encounterRef(ref *fhir.Reference) string {
	if ref == nil {
		return ""
	}
	return ref.Reference
}
