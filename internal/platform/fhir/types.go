// Package fhir holds the loosely typed FHIR-shaped element and resource
// structs consumed by the aggregation and history engines, together with the
// resolver and formatting helpers that encode their fallback chains. Records
// arrive from an external fetch layer with any subset of fields populated;
// nothing in this package assumes a complete resource.
package fhir

// Coding is a single code from a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept is a coded value with an optional free-text label.
type CodeableConcept struct {
	Text   string   `json:"text,omitempty"`
	Coding []Coding `json:"coding,omitempty"`
}

// Quantity is a measured amount. Value is a pointer: a quantity without a
// value renders as nothing, regardless of unit.
type Quantity struct {
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

// ReferenceRange is the normal range attached to an observation value.
type ReferenceRange struct {
	Low  *Quantity `json:"low,omitempty"`
	High *Quantity `json:"high,omitempty"`
	Text string    `json:"text,omitempty"`
}

// Reference points at another resource as "ResourceType/id".
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Annotation is a free-text note.
type Annotation struct {
	Text string `json:"text,omitempty"`
}

// Period is a start/end timestamp pair, both optional.
type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// HumanName is a patient or practitioner name.
type HumanName struct {
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

// Dosage is a medication dosage instruction.
type Dosage struct {
	Text string `json:"text,omitempty"`
}
