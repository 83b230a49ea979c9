package aggregate

import (
	"sort"

	"github.com/carenote/carenote/internal/platform/fhir"
)

// LatestByKey reduces a record list to the most recent record per key. The
// input is stably sorted newest first (records without a parsable date sort
// last), then the first record seen for each key wins. Every key
// participates, including the unknown-name placeholder, so unresolvable
// records dedupe among themselves instead of disappearing. Relative order of
// the winners follows the sorted order.
func LatestByKey[T any](records []T, keyOf func(T) string, dateOf func(T) string) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := fhir.ParseDate(dateOf(sorted[i]))
		tj, _ := fhir.ParseDate(dateOf(sorted[j]))
		return ti.After(tj)
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, r := range sorted {
		key := keyOf(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
