package carecontext

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/carenote/carenote/internal/aggregate"
	"github.com/carenote/carenote/internal/history"
	"github.com/carenote/carenote/internal/platform/fhir"
	"github.com/carenote/carenote/internal/platform/prompt"
)

type Service struct {
	repo     DatasetRepository
	registry *aggregate.Registry
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo DatasetRepository, registry *aggregate.Registry, logger zerolog.Logger) *Service {
	return &Service{repo: repo, registry: registry, logger: logger, now: time.Now}
}

// Categories describes every registered category in canonical order.
func (s *Service) Categories() []CategoryInfo {
	all := s.registry.All()
	out := make([]CategoryInfo, 0, len(all))
	for _, c := range all {
		out = append(out, CategoryInfo{
			ID:      c.ID(),
			Label:   c.Label(),
			Group:   c.Group(),
			Order:   c.Order(),
			Filters: c.Filters(),
		})
	}
	return out
}

// Context aggregates one patient's dataset into counts and narrative
// sections. A nil selection means every category; caller filters are layered
// over the registry defaults so missing keys never reach a category.
func (s *Service) Context(ctx context.Context, patientID string, selection map[string]bool, filters aggregate.FilterValues) (*ContextResult, error) {
	in, err := s.input(ctx, patientID, filters)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		selection = s.registry.DefaultSelection()
	}
	return &ContextResult{
		PatientID: patientID,
		Counts:    s.registry.Counts(in),
		Sections:  s.registry.ContextSections(selection, in),
	}, nil
}

// Prompt assembles the selected sections into the single text block handed
// to the language model.
func (s *Service) Prompt(ctx context.Context, patientID string, selection map[string]bool, filters aggregate.FilterValues) (*PromptResult, error) {
	res, err := s.Context(ctx, patientID, selection, filters)
	if err != nil {
		return nil, err
	}
	return &PromptResult{
		PatientID: patientID,
		Prompt:    prompt.Assemble(res.Sections),
	}, nil
}

// History builds the trend views for one observation code. When component
// names are given the per-component series and the joined composite view are
// included alongside the flat item list.
func (s *Service) History(ctx context.Context, patientID, code string, components []string) (*HistoryResult, error) {
	ds, err := s.repo.Dataset(ctx, patientID)
	if err != nil {
		return nil, err
	}
	observations := append(append([]fhir.Observation{}, ds.Observations...), ds.VitalSigns...)
	idx := history.NewIndex(ds.DiagnosticReports, ds.Observations)
	res := &HistoryResult{
		PatientID: patientID,
		Code:      code,
		Items:     history.Simple(observations, ds.Procedures, idx, code),
	}
	if len(components) > 0 {
		res.Components = history.Component(observations, code, components)
		res.Composite = history.Composite(observations, code, components)
	}
	return res, nil
}

// input loads the dataset and fixes the pass's clock and filter values.
func (s *Service) input(ctx context.Context, patientID string, filters aggregate.FilterValues) (aggregate.Input, error) {
	ds, err := s.repo.Dataset(ctx, patientID)
	if err != nil {
		return aggregate.Input{}, err
	}
	merged := s.registry.DefaultFilters()
	for k, v := range filters {
		merged[k] = v
	}
	return aggregate.NewInput(ds, merged, s.now()), nil
}
