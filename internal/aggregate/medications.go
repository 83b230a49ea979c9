package aggregate

import (
	"github.com/carenote/carenote/internal/platform/fhir"
	"github.com/carenote/carenote/pkg/fhirmodels"
)

// Medication status filter values.
const (
	MedicationStatusAll     = "all"
	MedicationStatusCurrent = "current"
	MedicationStatusPast    = "past"
)

// currentMedicationStatuses are the request statuses treated as a medication
// the patient is on today.
var currentMedicationStatuses = map[string]struct{}{
	fhirmodels.MedicationActive:    {},
	fhirmodels.MedicationCompleted: {},
}

// medicationsCategory lists prescriptions deduplicated to the most recent
// order per medication name, current before past.
type medicationsCategory struct{}

func (medicationsCategory) ID() string    { return "medications" }
func (medicationsCategory) Label() string { return "Medications" }
func (medicationsCategory) Group() string { return "Clinical" }
func (medicationsCategory) Order() int    { return 30 }

func (medicationsCategory) Filters() []FilterDecl {
	return []FilterDecl{{
		Key:     "medicationStatus",
		Label:   "Medication status",
		Type:    FilterSelect,
		Options: []string{MedicationStatusAll, MedicationStatusCurrent, MedicationStatusPast},
		Default: MedicationStatusAll,
	}}
}

func (c medicationsCategory) Count(in Input) int {
	current, past := c.partition(in)
	return len(current) + len(past)
}

func (c medicationsCategory) Narrate(in Input) []Section {
	current, past := c.partition(in)
	if len(current) == 0 && len(past) == 0 {
		return emptySection("Medications:")
	}
	var items []string
	if len(current) > 0 {
		items = append(items, "Current Medications:")
		for _, m := range current {
			items = append(items, medicationLine(m))
		}
	}
	if len(past) > 0 {
		if len(items) > 0 {
			items = append(items, "")
		}
		items = append(items, "Past Medications:")
		for _, m := range past {
			items = append(items, medicationLine(m))
		}
	}
	return []Section{{Title: "Medications:", Items: items}}
}

// partition deduplicates to the latest request per medication name, then
// splits by status and applies the status filter.
func (medicationsCategory) partition(in Input) (current, past []fhir.MedicationRequest) {
	if in.Dataset == nil {
		return nil, nil
	}
	status := in.Filters.Get("medicationStatus", MedicationStatusAll)
	latest := LatestByKey(in.Dataset.Medications,
		func(m fhir.MedicationRequest) string { return fhir.ConceptText(m.Medication) },
		func(m fhir.MedicationRequest) string { return m.AuthoredOn })
	for _, m := range latest {
		if _, ok := currentMedicationStatuses[m.Status]; ok {
			if status != MedicationStatusPast {
				current = append(current, m)
			}
		} else if status != MedicationStatusCurrent {
			past = append(past, m)
		}
	}
	return current, past
}

func medicationLine(m fhir.MedicationRequest) string {
	line := "- " + fhir.ConceptText(m.Medication)
	if len(m.DosageInstruction) > 0 && m.DosageInstruction[0].Text != "" {
		line += ": " + m.DosageInstruction[0].Text
	}
	if m.Status != "" {
		line += " (" + m.Status + ")"
	}
	return line
}
