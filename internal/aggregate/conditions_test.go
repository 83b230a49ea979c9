package aggregate

import (
	"strings"
	"testing"
	"time"

	"github.com/carenote/carenote/internal/platform/fhir"
)

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func concept(text string) *fhir.CodeableConcept {
	return &fhir.CodeableConcept{Text: text}
}

func codedConcept(code string) *fhir.CodeableConcept {
	return &fhir.CodeableConcept{Coding: []fhir.Coding{{Code: code}}}
}

func testInput(ds *Dataset, filters FilterValues) Input {
	return NewInput(ds, filters, testNow)
}

func sectionText(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(strings.Join(s.Items, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func TestConditionsPartition(t *testing.T) {
	ds := &Dataset{Conditions: []fhir.Condition{
		{ID: "c1", Code: concept("Hypertension"), ClinicalStatus: codedConcept("active")},
		{ID: "c2", Code: concept("Flu"), ClinicalStatus: codedConcept("resolved"), RecordedDate: "2023-05-01"},
	}}
	cat := conditionsCategory{}

	in := testInput(ds, FilterValues{"conditionStatus": ConditionStatusAll})
	if got := cat.Count(in); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	text := sectionText(cat.Narrate(in))
	activeAt := strings.Index(text, "Active Conditions:")
	resolvedAt := strings.Index(text, "Resolved Conditions:")
	if activeAt < 0 || resolvedAt < 0 || activeAt > resolvedAt {
		t.Fatalf("active block must precede resolved block:\n%s", text)
	}
	if !strings.Contains(text, "Hypertension") || !strings.Contains(text, "Flu") {
		t.Errorf("both conditions should be narrated:\n%s", text)
	}

	in = testInput(ds, FilterValues{"conditionStatus": ConditionStatusActive})
	if got := cat.Count(in); got != 1 {
		t.Errorf("active-only count = %d, want 1", got)
	}
	text = sectionText(cat.Narrate(in))
	if strings.Contains(text, "Flu") {
		t.Errorf("resolved condition leaked through active filter:\n%s", text)
	}
}

func TestConditionsRecurrenceIsActive(t *testing.T) {
	ds := &Dataset{Conditions: []fhir.Condition{
		{ID: "c1", Code: concept("Sinusitis"), ClinicalStatus: codedConcept("recurrence")},
	}}
	in := testInput(ds, FilterValues{"conditionStatus": ConditionStatusActive})
	if got := (conditionsCategory{}).Count(in); got != 1 {
		t.Errorf("count = %d, recurrence should count as active", got)
	}
}

func TestConditionsEmptyDataset(t *testing.T) {
	cat := conditionsCategory{}
	in := testInput(&Dataset{}, nil)
	if got := cat.Count(in); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	sections := cat.Narrate(in)
	if len(sections) != 1 || len(sections[0].Items) != 1 {
		t.Fatalf("want single placeholder section, got %+v", sections)
	}
}

func TestConditionsMissingFilterUsesDefault(t *testing.T) {
	ds := &Dataset{Conditions: []fhir.Condition{
		{ID: "c1", Code: concept("Hypertension"), ClinicalStatus: codedConcept("active")},
		{ID: "c2", Code: concept("Flu"), ClinicalStatus: codedConcept("resolved")},
	}}
	// No filter key at all: the default is "all".
	if got := (conditionsCategory{}).Count(testInput(ds, nil)); got != 2 {
		t.Errorf("count = %d, want 2 under default filter", got)
	}
}
