package fhir

import (
	"strconv"
	"strings"
	"time"
)

// UnknownDisplay is the placeholder emitted when a concept has no resolvable
// human label.
const UnknownDisplay = "—"

// ConceptText resolves a coded concept to a human label: explicit text, then
// the first coding's display, then the first coding's code, then the unknown
// placeholder. Every call site that renders a concept goes through here.
func ConceptText(c *CodeableConcept) string {
	if c == nil {
		return UnknownDisplay
	}
	if c.Text != "" {
		return c.Text
	}
	if len(c.Coding) > 0 {
		if c.Coding[0].Display != "" {
			return c.Coding[0].Display
		}
		if c.Coding[0].Code != "" {
			return c.Coding[0].Code
		}
	}
	return UnknownDisplay
}

// ConceptCode returns the first coding's code, or "" when uncoded.
func ConceptCode(c *CodeableConcept) string {
	if c == nil || len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Code
}

// ReferenceID extracts the id segment from a "ResourceType/id" reference
// string: everything after the last slash. A bare id passes through
// unchanged; an empty reference yields "".
func ReferenceID(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// dateLayouts are tried in order when parsing loosely formatted timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses a loosely formatted FHIR timestamp. The second return is
// false for empty or unparsable input; callers treat that as "no date".
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDay renders a timestamp as its calendar day (2006-01-02), or "" when
// the input has no parsable date.
func FormatDay(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatQuantity renders a quantity as "value" or "value unit". A nil
// quantity or one without a value renders as "".
func FormatQuantity(q *Quantity) string {
	if q == nil || q.Value == nil {
		return ""
	}
	s := strconv.FormatFloat(*q.Value, 'f', -1, 64)
	if q.Unit != "" {
		s += " " + q.Unit
	}
	return s
}

// FormatReferenceRange renders the first entry of a reference-range list:
// explicit text wins, then "low - high", ">= low", or "<= high", with the
// unit of whichever bound carries one.
func FormatReferenceRange(ranges []ReferenceRange) string {
	if len(ranges) == 0 {
		return ""
	}
	rr := ranges[0]
	if rr.Text != "" {
		return rr.Text
	}
	low := rr.Low != nil && rr.Low.Value != nil
	high := rr.High != nil && rr.High.Value != nil
	unit := ""
	if low && rr.Low.Unit != "" {
		unit = rr.Low.Unit
	} else if high && rr.High.Unit != "" {
		unit = rr.High.Unit
	}
	var s string
	switch {
	case low && high:
		s = strconv.FormatFloat(*rr.Low.Value, 'f', -1, 64) + " - " + strconv.FormatFloat(*rr.High.Value, 'f', -1, 64)
	case low:
		s = ">= " + strconv.FormatFloat(*rr.Low.Value, 'f', -1, 64)
	case high:
		s = "<= " + strconv.FormatFloat(*rr.High.Value, 'f', -1, 64)
	default:
		return ""
	}
	if unit != "" {
		s += " " + unit
	}
	return s
}

// interpretationLabels maps HL7 v3 interpretation codes (and their common
// display synonyms) to the fixed short labels the narrative uses.
var interpretationLabels = map[string]string{
	"H": "High", "HI": "High", "HIGH": "High",
	"L": "Low", "LO": "Low", "LOW": "Low",
	"N": "Normal", "NL": "Normal", "NORMAL": "Normal",
	"A": "Abnormal", "ABN": "Abnormal", "ABNORMAL": "Abnormal",
	"HH": "Critical high", "LL": "Critical low", "AA": "Critical",
	"POS": "Positive", "POSITIVE": "Positive",
	"NEG": "Negative", "NEGATIVE": "Negative",
}

// FormatInterpretation renders the first interpretation concept through the
// synonym vocabulary; codes outside the vocabulary pass through as resolved.
func FormatInterpretation(interps []CodeableConcept) string {
	if len(interps) == 0 {
		return ""
	}
	c := interps[0]
	for _, key := range []string{ConceptCode(&c), c.Text} {
		if key == "" {
			continue
		}
		if label, ok := interpretationLabels[strings.ToUpper(key)]; ok {
			return label
		}
	}
	resolved := ConceptText(&c)
	if resolved == UnknownDisplay {
		return ""
	}
	if label, ok := interpretationLabels[strings.ToUpper(resolved)]; ok {
		return label
	}
	return resolved
}
