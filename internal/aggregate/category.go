package aggregate

import (
	"time"

	"github.com/carenote/carenote/internal/history"
)

// Filter control types.
const (
	FilterSelect = "select"
	FilterToggle = "toggle"
)

// FilterDecl declares one tunable knob a category exposes. Options is the
// closed set of accepted values; anything else is treated as the default.
type FilterDecl struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Default string   `json:"default"`
}

// FilterValues are the chosen filter settings for one pass, keyed by
// FilterDecl.Key.
type FilterValues map[string]string

// Get returns the chosen value for a filter key, or the fallback when the
// key is unset.
func (fv FilterValues) Get(key, fallback string) string {
	if v, ok := fv[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Section is one titled block of narrative lines.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// emptySection builds the section a category emits when it has no records to
// describe, so downstream consumers always see the category named.
func emptySection(title string) []Section {
	return []Section{{Title: title, Items: []string{"None recorded"}}}
}

// Input carries everything a category evaluation reads: the dataset snapshot,
// the report/observation index built once per pass, the chosen filter values
// and the pass's fixed clock reading.
type Input struct {
	Dataset *Dataset
	Index   *history.Index
	Filters FilterValues
	Now     time.Time
}

// Category is one pluggable unit of aggregation. Implementations are pure:
// Count and Narrate read only their Input and never fail; missing or
// malformed records degrade to placeholders, not errors.
type Category interface {
	// ID is the stable wire identifier, e.g. "labReports".
	ID() string
	// Label is the human display name.
	Label() string
	// Group names the display grouping the category belongs to.
	Group() string
	// Order fixes the category's position; lower sorts first.
	Order() int
	// Filters declares the category's tunable knobs, empty when none.
	Filters() []FilterDecl
	// Count returns how many records the category would describe.
	Count(in Input) int
	// Narrate renders the category's sections for the prompt.
	Narrate(in Input) []Section
}
