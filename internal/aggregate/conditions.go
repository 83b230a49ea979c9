package aggregate

import (
	"strings"

	"github.com/carenote/carenote/internal/platform/fhir"
	"github.com/carenote/carenote/pkg/fhirmodels"
)

// Condition status filter values.
const (
	ConditionStatusAll      = "all"
	ConditionStatusActive   = "active"
	ConditionStatusResolved = "resolved"
)

// activeConditionStatuses are the clinical statuses treated as ongoing.
var activeConditionStatuses = map[string]struct{}{
	fhirmodels.ConditionActive:     {},
	fhirmodels.ConditionRecurrence: {},
	fhirmodels.ConditionRelapse:    {},
}

// conditionsCategory partitions the problem list into active and resolved
// blocks, active first.
type conditionsCategory struct{}

func (conditionsCategory) ID() string    { return "conditions" }
func (conditionsCategory) Label() string { return "Conditions" }
func (conditionsCategory) Group() string { return "Clinical" }
func (conditionsCategory) Order() int    { return 20 }

func (conditionsCategory) Filters() []FilterDecl {
	return []FilterDecl{{
		Key:     "conditionStatus",
		Label:   "Condition status",
		Type:    FilterSelect,
		Options: []string{ConditionStatusAll, ConditionStatusActive, ConditionStatusResolved},
		Default: ConditionStatusAll,
	}}
}

func (c conditionsCategory) Count(in Input) int {
	active, resolved := c.partition(in)
	return len(active) + len(resolved)
}

func (c conditionsCategory) Narrate(in Input) []Section {
	active, resolved := c.partition(in)
	if len(active) == 0 && len(resolved) == 0 {
		return emptySection("Conditions:")
	}
	var items []string
	if len(active) > 0 {
		items = append(items, "Active Conditions:")
		for _, cond := range active {
			items = append(items, conditionLine(cond))
		}
	}
	if len(resolved) > 0 {
		if len(items) > 0 {
			items = append(items, "")
		}
		items = append(items, "Resolved Conditions:")
		for _, cond := range resolved {
			items = append(items, conditionLine(cond))
		}
	}
	return []Section{{Title: "Conditions:", Items: items}}
}

// partition splits the problem list by clinical status and applies the
// status filter.
func (conditionsCategory) partition(in Input) (active, resolved []fhir.Condition) {
	if in.Dataset == nil {
		return nil, nil
	}
	status := in.Filters.Get("conditionStatus", ConditionStatusAll)
	for _, cond := range in.Dataset.Conditions {
		if isActiveCondition(&cond) {
			if status != ConditionStatusResolved {
				active = append(active, cond)
			}
		} else if status != ConditionStatusActive {
			resolved = append(resolved, cond)
		}
	}
	return active, resolved
}

func isActiveCondition(cond *fhir.Condition) bool {
	status := fhir.ConceptCode(cond.ClinicalStatus)
	if status == "" && cond.ClinicalStatus != nil {
		status = cond.ClinicalStatus.Text
	}
	_, ok := activeConditionStatuses[strings.ToLower(status)]
	return ok
}

func conditionLine(cond fhir.Condition) string {
	line := "- " + fhir.ConceptText(cond.Code)
	date := cond.OnsetDateTime
	label := "onset"
	if date == "" {
		date = cond.RecordedDate
		label = "recorded"
	}
	if day := fhir.FormatDay(date); day != "" {
		line += " (" + label + " " + day + ")"
	}
	return line
}
