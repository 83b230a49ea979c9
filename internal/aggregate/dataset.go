package aggregate

import (
	"github.com/carenote/carenote/internal/platform/fhir"
)

// Dataset is the snapshot of one patient's records that a single aggregation
// pass reads. The fetch layer fills it; categories never mutate it.
type Dataset struct {
	Patient           *fhir.Patient
	Conditions        []fhir.Condition
	Medications       []fhir.MedicationRequest
	Allergies         []fhir.AllergyIntolerance
	DiagnosticReports []fhir.DiagnosticReport
	Observations      []fhir.Observation
	Procedures        []fhir.Procedure
	VitalSigns        []fhir.Observation
	Encounters        []fhir.Encounter
}
