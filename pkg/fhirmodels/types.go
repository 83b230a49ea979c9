// Package fhirmodels holds the FHIR R4 value set constants used across the
// application.
package fhirmodels

// ConditionClinicalStatus codes.
const (
	ConditionActive     = "active"
	ConditionRecurrence = "recurrence"
	ConditionRelapse    = "relapse"
	ConditionInactive   = "inactive"
	ConditionRemission  = "remission"
	ConditionResolved   = "resolved"
)

// MedicationRequestStatus codes.
const (
	MedicationActive         = "active"
	MedicationOnHold         = "on-hold"
	MedicationCancelled      = "cancelled"
	MedicationCompleted      = "completed"
	MedicationEnteredInError = "entered-in-error"
	MedicationStopped        = "stopped"
	MedicationDraft          = "draft"
	MedicationUnknown        = "unknown"
)

// ObservationCategory codes.
const (
	ObsCategoryVitalSigns    = "vital-signs"
	ObsCategoryLaboratory    = "laboratory"
	ObsCategoryImaging       = "imaging"
	ObsCategorySocialHistory = "social-history"
	ObsCategoryExam          = "exam"
)

// Diagnostic service section codes used to classify DiagnosticReports.
const (
	ReportSectionRadiology  = "RAD"
	ReportSectionImaging    = "IMG"
	ReportSectionLaboratory = "LAB"
	ReportSectionHematology = "HM"
	ReportSectionChemistry  = "CH"
)

// AllergyIntolerance criticality codes.
const (
	CriticalityLow            = "low"
	CriticalityHigh           = "high"
	CriticalityUnableToAssess = "unable-to-assess"
)
