package normsuite

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/scenario"
)

// Report is the outcome of running a scenario.
type Report struct {
	Name         string          `json:"name,omitempty"`
	Goal         domain.Goal     `json:"goal"`
	Plans        []domain.Path   `json:"plans"`
	Observations int             `json:"observations"`
	Skipped      []Skip          `json:"skipped,omitempty"`
	Requested    int             `json:"requested"`
	Effective    int             `json:"effective"`
	Top          []domain.Scored `json:"top"`
	Ranked       []domain.Scored `json:"ranked,omitempty"`
}

// Skip records evidence that could not contribute for a trace.
type Skip struct {
	Trace    string          `json:"trace"`
	Evidence domain.Evidence `json:"evidence"`
	Reason   string          `json:"reason"`
}

// WithTop overrides the number of hypotheses Infer reports.
func WithTop(n int) Option {
	return func(c *config) {
		c.top = &n
	}
}

// WithRanked makes Infer include the full ranked report.
func WithRanked() Option {
	return func(c *config) {
		c.ranked = true
	}
}

// FromScenario creates a suite from a scenario. The scenario parameters apply
// unless overridden by WithParams.
func FromScenario(sc *scenario.Scenario, opts ...Option) (*Suite, error) {
	model, err := sc.Model()
	if err != nil {
		return nil, err
	}
	base := []Option{WithParams(sc.Params), WithName(sc.Name)}
	return FromModel(model, append(base, opts...)...)
}

// Infer builds a suite from the scenario, applies its traces in order and
// reports the most probable norms.
func Infer(ctx context.Context, sc *scenario.Scenario, opts ...Option) (*Report, error) {
	c := apply(opts)
	top := sc.Top
	if c.top != nil {
		top = *c.top
	}

	traces, err := sc.ParseTraces()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var skipped []Skip
	collect := WithLifecycleHooks(domain.LifecycleHooks{
		OnEvidenceSkipped: func(_ context.Context, e *domain.SkipEvent) {
			mu.Lock()
			defer mu.Unlock()
			skipped = append(skipped, Skip{Trace: e.Trace.String(), Evidence: e.Evidence, Reason: e.Err.Error()})
		},
	})

	s, err := FromScenario(sc, append(append([]Option(nil), opts...), collect)...)
	if err != nil {
		return nil, err
	}
	if err := s.UpdateMany(ctx, traces); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	best, effective := s.MostProbable(top)
	report := &Report{
		Name:         s.Name,
		Goal:         s.Goal(),
		Plans:        s.Paths(),
		Observations: len(traces),
		Skipped:      skipped,
		Requested:    top,
		Effective:    effective,
		Top:          best,
	}
	if c.ranked {
		report.Ranked = s.RankedReport()
	}
	return report, nil
}
