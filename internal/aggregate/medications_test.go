package aggregate

import (
	"strings"
	"testing"

	"github.com/carenote/carenote/internal/platform/fhir"
)

func medication(id, name, status, authored string) fhir.MedicationRequest {
	return fhir.MedicationRequest{
		ID:         id,
		Medication: concept(name),
		Status:     status,
		AuthoredOn: authored,
	}
}

func TestMedicationsDedupesToLatestOrder(t *testing.T) {
	ds := &Dataset{Medications: []fhir.MedicationRequest{
		medication("m1", "Lisinopril", "stopped", "2023-01-01"),
		medication("m2", "Lisinopril", "active", "2024-05-01"),
		medication("m3", "Metformin", "active", "2024-02-01"),
	}}
	cat := medicationsCategory{}
	in := testInput(ds, nil)

	if got := cat.Count(in); got != 2 {
		t.Errorf("count = %d, want 2 after dedup", got)
	}
	text := sectionText(cat.Narrate(in))
	if strings.Count(text, "Lisinopril") != 1 {
		t.Errorf("Lisinopril should appear once:\n%s", text)
	}
	if strings.Contains(text, "Past Medications:") {
		t.Errorf("no past block expected when every latest order is current:\n%s", text)
	}
}

func TestMedicationsCurrentBeforePast(t *testing.T) {
	ds := &Dataset{Medications: []fhir.MedicationRequest{
		medication("m1", "Warfarin", "stopped", "2022-01-01"),
		medication("m2", "Metformin", "active", "2024-02-01"),
	}}
	cat := medicationsCategory{}
	text := sectionText(cat.Narrate(testInput(ds, nil)))
	currentAt := strings.Index(text, "Current Medications:")
	pastAt := strings.Index(text, "Past Medications:")
	if currentAt < 0 || pastAt < 0 || currentAt > pastAt {
		t.Fatalf("current block must precede past block:\n%s", text)
	}

	in := testInput(ds, FilterValues{"medicationStatus": MedicationStatusCurrent})
	if got := cat.Count(in); got != 1 {
		t.Errorf("current-only count = %d, want 1", got)
	}
}

func TestMedicationsCompletedCountsAsCurrent(t *testing.T) {
	ds := &Dataset{Medications: []fhir.MedicationRequest{
		medication("m1", "Amoxicillin", "completed", "2024-06-01"),
	}}
	in := testInput(ds, FilterValues{"medicationStatus": MedicationStatusCurrent})
	if got := (medicationsCategory{}).Count(in); got != 1 {
		t.Errorf("count = %d, completed should count as current", got)
	}
}

func TestMedicationsUnnamedStillNarrated(t *testing.T) {
	// A request without a medication concept resolves to the unknown
	// placeholder and is counted and narrated under it, not dropped.
	ds := &Dataset{Medications: []fhir.MedicationRequest{
		{ID: "m1", Status: "active", AuthoredOn: "2024-05-01"},
	}}
	cat := medicationsCategory{}
	in := testInput(ds, nil)

	if got := cat.Count(in); got != 1 {
		t.Errorf("count = %d, want 1 for an unnamed request", got)
	}
	text := sectionText(cat.Narrate(in))
	if !strings.Contains(text, "- "+fhir.UnknownDisplay+" (active)") {
		t.Errorf("expected placeholder line, got:\n%s", text)
	}
	if strings.Contains(text, "None recorded") {
		t.Errorf("unnamed request must not narrate as empty:\n%s", text)
	}
}

func TestMedicationsUnnamedDedupeTogether(t *testing.T) {
	ds := &Dataset{Medications: []fhir.MedicationRequest{
		{ID: "m1", Status: "stopped", AuthoredOn: "2023-01-01"},
		{ID: "m2", Status: "active", AuthoredOn: "2024-05-01"},
	}}
	in := testInput(ds, nil)
	if got := (medicationsCategory{}).Count(in); got != 1 {
		t.Errorf("count = %d, want 1 after unnamed requests dedupe under the placeholder", got)
	}
}

func TestMedicationLineIncludesDosage(t *testing.T) {
	m := medication("m1", "Lisinopril 10mg", "active", "2024-05-01")
	m.DosageInstruction = []fhir.Dosage{{Text: "Take once daily"}}
	if got := medicationLine(m); got != "- Lisinopril 10mg: Take once daily (active)" {
		t.Errorf("got %q", got)
	}
}
