// Package carecontext serves a patient's aggregated clinical context: the
// per-category counts and narrative sections consumed by the note assistant,
// the assembled prompt text, and per-observation trend histories.
package carecontext

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/carenote/carenote/internal/aggregate"
	"github.com/carenote/carenote/internal/history"
)

// Resource types stored in the clinical_resource table.
const (
	ResourcePatient            = "Patient"
	ResourceCondition          = "Condition"
	ResourceMedicationRequest  = "MedicationRequest"
	ResourceAllergyIntolerance = "AllergyIntolerance"
	ResourceDiagnosticReport   = "DiagnosticReport"
	ResourceObservation        = "Observation"
	ResourceProcedure          = "Procedure"
	ResourceEncounter          = "Encounter"
)

// ClinicalResource is one stored clinical record: a patient-scoped FHIR
// resource kept as the raw JSON the source system delivered.
type ClinicalResource struct {
	ID           uuid.UUID       `json:"id"`
	PatientID    string          `json:"patient_id"`
	ResourceType string          `json:"resource_type"`
	Resource     json.RawMessage `json:"resource"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CategoryInfo is the wire description of one registered category.
type CategoryInfo struct {
	ID      string                 `json:"id"`
	Label   string                 `json:"label"`
	Group   string                 `json:"group"`
	Order   int                    `json:"order"`
	Filters []aggregate.FilterDecl `json:"filters,omitempty"`
}

// ContextResult is the aggregated clinical context for one patient.
type ContextResult struct {
	PatientID string              `json:"patient_id"`
	Counts    map[string]int      `json:"counts"`
	Sections  []aggregate.Section `json:"sections"`
}

// PromptResult is the assembled prompt text for one patient.
type PromptResult struct {
	PatientID string `json:"patient_id"`
	Prompt    string `json:"prompt"`
}

// HistoryResult is the trend history for one observation code. Components
// and Composite are present only when component names were requested.
type HistoryResult struct {
	PatientID  string           `json:"patient_id"`
	Code       string           `json:"code"`
	Items      []history.Item   `json:"items"`
	Components []history.Series `json:"components,omitempty"`
	Composite  []history.Item   `json:"composite,omitempty"`
}
