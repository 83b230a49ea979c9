package fhir

import "testing"

func f64(v float64) *float64 { return &v }

func TestConceptTextResolutionChain(t *testing.T) {
	cases := []struct {
		name string
		in   *CodeableConcept
		want string
	}{
		{"nil concept", nil, UnknownDisplay},
		{"empty concept", &CodeableConcept{}, UnknownDisplay},
		{"explicit text wins", &CodeableConcept{Text: "Hemoglobin", Coding: []Coding{{Display: "Hgb"}}}, "Hemoglobin"},
		{"first coding display", &CodeableConcept{Coding: []Coding{{Code: "718-7", Display: "Hemoglobin"}}}, "Hemoglobin"},
		{"first coding code", &CodeableConcept{Coding: []Coding{{Code: "718-7"}}}, "718-7"},
		{"later codings ignored", &CodeableConcept{Coding: []Coding{{}, {Display: "second"}}}, UnknownDisplay},
	}
	for _, tc := range cases {
		if got := ConceptText(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestReferenceID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Observation/abc-123", "abc-123"},
		{"urn:uuid:Patient/p1", "p1"},
		{"bare-id", "bare-id"},
		{"Observation/", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ReferenceID(tc.in); got != tc.want {
			t.Errorf("ReferenceID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-06-01T10:30:00Z", "2024-06-01T10:30:00", "2024-06-01", "2024-06", "2024"} {
		if _, ok := ParseDate(s); !ok {
			t.Errorf("ParseDate(%q) failed, want success", s)
		}
	}
	for _, s := range []string{"", "not a date", "06/01/2024"} {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) succeeded, want failure", s)
		}
	}
}

func TestFormatDay(t *testing.T) {
	if got := FormatDay("2024-06-01T10:30:00Z"); got != "2024-06-01" {
		t.Errorf("got %q, want 2024-06-01", got)
	}
	if got := FormatDay("garbage"); got != "" {
		t.Errorf("got %q for unparsable input, want empty", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   *Quantity
		want string
	}{
		{"nil", nil, ""},
		{"no value", &Quantity{Unit: "mg/dL"}, ""},
		{"value only", &Quantity{Value: f64(98.6)}, "98.6"},
		{"value and unit", &Quantity{Value: f64(13.5), Unit: "g/dL"}, "13.5 g/dL"},
		{"integer value", &Quantity{Value: f64(120), Unit: "mmHg"}, "120 mmHg"},
	}
	for _, tc := range cases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatReferenceRange(t *testing.T) {
	cases := []struct {
		name string
		in   []ReferenceRange
		want string
	}{
		{"empty", nil, ""},
		{"text wins", []ReferenceRange{{Text: "within normal limits", Low: &Quantity{Value: f64(1)}}}, "within normal limits"},
		{"both bounds", []ReferenceRange{{Low: &Quantity{Value: f64(3.5), Unit: "g/dL"}, High: &Quantity{Value: f64(5.1)}}}, "3.5 - 5.1 g/dL"},
		{"low only", []ReferenceRange{{Low: &Quantity{Value: f64(60)}}}, ">= 60"},
		{"high only", []ReferenceRange{{High: &Quantity{Value: f64(200), Unit: "mg/dL"}}}, "<= 200 mg/dL"},
		{"no bounds", []ReferenceRange{{}}, ""},
	}
	for _, tc := range cases {
		if got := FormatReferenceRange(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatInterpretation(t *testing.T) {
	cases := []struct {
		name string
		in   []CodeableConcept
		want string
	}{
		{"empty", nil, ""},
		{"code H", []CodeableConcept{{Coding: []Coding{{Code: "H"}}}}, "High"},
		{"code HI", []CodeableConcept{{Coding: []Coding{{Code: "HI"}}}}, "High"},
		{"text high", []CodeableConcept{{Text: "HIGH"}}, "High"},
		{"lowercase text", []CodeableConcept{{Text: "low"}}, "Low"},
		{"normal", []CodeableConcept{{Coding: []Coding{{Code: "N"}}}}, "Normal"},
		{"critical high", []CodeableConcept{{Coding: []Coding{{Code: "HH"}}}}, "Critical high"},
		{"unknown passes through", []CodeableConcept{{Text: "Indeterminate"}}, "Indeterminate"},
		{"display synonym", []CodeableConcept{{Coding: []Coding{{Display: "Abnormal"}}}}, "Abnormal"},
	}
	for _, tc := range cases {
		if got := FormatInterpretation(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestObservationEffectiveDate(t *testing.T) {
	o := &Observation{EffectiveDateTime: "2024-01-01", Issued: "2024-02-01"}
	if got := o.EffectiveDate(); got != "2024-01-01" {
		t.Errorf("got %q, want effectiveDateTime", got)
	}
	o = &Observation{Issued: "2024-02-01"}
	if got := o.EffectiveDate(); got != "2024-02-01" {
		t.Errorf("got %q, want issued fallback", got)
	}
}
