// Package aggregate assembles a patient's clinical records into per-category
// counts and narrative sections. Categories are registered once, selected per
// request, and evaluated as pure functions over a dataset snapshot; two calls
// with the same inputs produce identical output.
package aggregate

import (
	"time"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// Temporal window identifiers accepted by windowed category filters.
const (
	WindowWeek    = "1w"
	WindowMonth   = "1m"
	Window3Months = "3m"
	Window6Months = "6m"
	WindowYear    = "1y"
	WindowAll     = "all"
)

// windowDays maps each bounded window to its inclusive day threshold.
var windowDays = map[string]int{
	WindowWeek:    7,
	WindowMonth:   30,
	Window3Months: 90,
	Window6Months: 180,
	WindowYear:    365,
}

// InWindow reports whether a dated record falls inside the window ending at
// now. "all" and unrecognized windows admit everything; bounded windows admit
// records at most N days old, inclusive, and reject records whose date is
// missing or unparsable.
func InWindow(date string, window string, now time.Time) bool {
	days, bounded := windowDays[window]
	if !bounded {
		return true
	}
	t, ok := fhir.ParseDate(date)
	if !ok {
		return false
	}
	return now.Sub(t) <= time.Duration(days)*24*time.Hour
}
