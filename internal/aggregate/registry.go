package aggregate

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/carenote/carenote/internal/history"
)

// Registry holds the fixed category set and drives one aggregation pass.
// The set is closed: every implementation is registered by the constructor,
// there is no runtime plugin surface.
type Registry struct {
	logger     zerolog.Logger
	categories []Category
	byID       map[string]Category
}

// NewRegistry constructs a registry with every category registered.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		logger: logger,
		byID:   make(map[string]Category),
	}
	for _, c := range []Category{
		patientInfoCategory{},
		conditionsCategory{},
		medicationsCategory{},
		allergiesCategory{},
		labReportsCategory{},
		imagingReportsCategory{},
		proceduresCategory{},
		vitalSignsCategory{},
	} {
		r.register(c)
	}
	return r
}

func (r *Registry) register(c Category) {
	if _, dup := r.byID[c.ID()]; dup {
		r.logger.Warn().Str("category", c.ID()).Msg("duplicate category id ignored")
		return
	}
	r.byID[c.ID()] = c
	r.categories = append(r.categories, c)
}

// NewInput builds the evaluation input for one pass: the dataset snapshot,
// the report/observation index built once, the filter values and the fixed
// clock reading shared by every category.
func NewInput(ds *Dataset, filters FilterValues, now time.Time) Input {
	in := Input{Dataset: ds, Filters: filters, Now: now}
	if ds != nil {
		in.Index = history.NewIndex(ds.DiagnosticReports, ds.Observations)
	}
	return in
}

// All returns the categories sorted by Order ascending, ties broken by
// registration order. This is the canonical section ordering.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order() < out[j].Order() })
	return out
}

// Get returns the category with the given id, or nil when unregistered.
func (r *Registry) Get(id string) Category {
	return r.byID[id]
}

// DefaultSelection maps every registered id to true.
func (r *Registry) DefaultSelection() map[string]bool {
	sel := make(map[string]bool, len(r.categories))
	for _, c := range r.categories {
		sel[c.ID()] = true
	}
	return sel
}

// DefaultFilters flattens every category's filter declarations into one
// value map. Duplicate keys across categories are overwritten in
// registration order; in practice keys are category-prefixed and unique.
func (r *Registry) DefaultFilters() FilterValues {
	fv := make(FilterValues)
	for _, c := range r.categories {
		for _, d := range c.Filters() {
			fv[d.Key] = d.Default
		}
	}
	return fv
}

// Count evaluates one category's count. An unregistered id is a no-op
// returning zero with a logged warning.
func (r *Registry) Count(id string, in Input) int {
	c, ok := r.byID[id]
	if !ok {
		r.logger.Warn().Str("category", id).Msg("count requested for unregistered category")
		return 0
	}
	return c.Count(in)
}

// Counts evaluates every category's count in one pass.
func (r *Registry) Counts(in Input) map[string]int {
	counts := make(map[string]int, len(r.categories))
	for _, c := range r.categories {
		counts[c.ID()] = c.Count(in)
	}
	return counts
}

// ContextSections narrates every selected category in canonical order and
// flattens the results into one section list.
func (r *Registry) ContextSections(selection map[string]bool, in Input) []Section {
	var sections []Section
	for _, c := range r.All() {
		if !selection[c.ID()] {
			continue
		}
		sections = append(sections, c.Narrate(in)...)
	}
	return sections
}
