package fhir

// Resource records below mirror the subset of FHIR R4 fields the aggregation
// engine reads. All timestamps are kept as the raw strings the fetch layer
// delivered; parsing happens once, in ParseDate, at the point of comparison.

// Patient carries the demographics used by the patient-info category.
type Patient struct {
	ID        string      `json:"id,omitempty"`
	Name      []HumanName `json:"name,omitempty"`
	Gender    string      `json:"gender,omitempty"`
	BirthDate string      `json:"birthDate,omitempty"`
}

// Condition is a problem-list entry.
type Condition struct {
	ID             string           `json:"id,omitempty"`
	Code           *CodeableConcept `json:"code,omitempty"`
	ClinicalStatus *CodeableConcept `json:"clinicalStatus,omitempty"`
	OnsetDateTime  string           `json:"onsetDateTime,omitempty"`
	RecordedDate   string           `json:"recordedDate,omitempty"`
}

// MedicationRequest is a prescription.
type MedicationRequest struct {
	ID                string           `json:"id,omitempty"`
	Medication        *CodeableConcept `json:"medicationCodeableConcept,omitempty"`
	Status            string           `json:"status,omitempty"`
	AuthoredOn        string           `json:"authoredOn,omitempty"`
	DosageInstruction []Dosage         `json:"dosageInstruction,omitempty"`
}

// AllergyReaction is one reaction episode on an allergy record.
type AllergyReaction struct {
	Manifestation []CodeableConcept `json:"manifestation,omitempty"`
}

// AllergyIntolerance is an allergy or intolerance record.
type AllergyIntolerance struct {
	ID             string            `json:"id,omitempty"`
	Code           *CodeableConcept  `json:"code,omitempty"`
	ClinicalStatus *CodeableConcept  `json:"clinicalStatus,omitempty"`
	Criticality    string            `json:"criticality,omitempty"`
	Reaction       []AllergyReaction `json:"reaction,omitempty"`
	RecordedDate   string            `json:"recordedDate,omitempty"`
}

// DiagnosticReport groups observation results under one order/panel.
type DiagnosticReport struct {
	ID                string            `json:"id,omitempty"`
	Code              *CodeableConcept  `json:"code,omitempty"`
	Category          []CodeableConcept `json:"category,omitempty"`
	Status            string            `json:"status,omitempty"`
	EffectiveDateTime string            `json:"effectiveDateTime,omitempty"`
	Issued            string            `json:"issued,omitempty"`
	Result            []Reference       `json:"result,omitempty"`
	Conclusion        string            `json:"conclusion,omitempty"`
	Encounter         *Reference        `json:"encounter,omitempty"`
}

// ObservationComponent is one sub-measurement of a composite observation
// (e.g. the systolic half of a blood pressure reading).
type ObservationComponent struct {
	Code           *CodeableConcept  `json:"code,omitempty"`
	ValueQuantity  *Quantity         `json:"valueQuantity,omitempty"`
	ValueString    string            `json:"valueString,omitempty"`
	Interpretation []CodeableConcept `json:"interpretation,omitempty"`
	ReferenceRange []ReferenceRange  `json:"referenceRange,omitempty"`
}

// Observation is a single measurement or lab result.
type Observation struct {
	ID                string                 `json:"id,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty"`
	Category          []CodeableConcept      `json:"category,omitempty"`
	Status            string                 `json:"status,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	Issued            string                 `json:"issued,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	ValueString       string                 `json:"valueString,omitempty"`
	Interpretation    []CodeableConcept      `json:"interpretation,omitempty"`
	ReferenceRange    []ReferenceRange       `json:"referenceRange,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
	HasMember         []Reference            `json:"hasMember,omitempty"`
	Encounter         *Reference             `json:"encounter,omitempty"`
}

// Procedure is a performed procedure.
type Procedure struct {
	ID                string           `json:"id,omitempty"`
	Code              *CodeableConcept `json:"code,omitempty"`
	Status            string           `json:"status,omitempty"`
	PerformedDateTime string           `json:"performedDateTime,omitempty"`
	Outcome           *CodeableConcept `json:"outcome,omitempty"`
	Note              []Annotation     `json:"note,omitempty"`
	Encounter         *Reference       `json:"encounter,omitempty"`
}

// Encounter is a visit during which other records were captured.
type Encounter struct {
	ID     string            `json:"id,omitempty"`
	Class  string            `json:"class,omitempty"`
	Type   []CodeableConcept `json:"type,omitempty"`
	Period *Period           `json:"period,omitempty"`
}

// EffectiveDate returns the observation's best-known timestamp: effective
// time first, issued time as fallback.
func (o *Observation) EffectiveDate() string {
	if o.EffectiveDateTime != "" {
		return o.EffectiveDateTime
	}
	return o.Issued
}

// EffectiveDate returns the report's best-known timestamp.
func (r *DiagnosticReport) EffectiveDate() string {
	if r.EffectiveDateTime != "" {
		return r.EffectiveDateTime
	}
	return r.Issued
}
