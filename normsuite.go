package normsuite

import (
	"context"
	"log/slog"

	"github.com/aretw0/normsuite/internal/inference"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/dsl"
	"github.com/aretw0/normsuite/pkg/ports"
)

// Suite is the high-level entry point of the library.
// It wraps the inference engine and provides a simplified API for consumers.
type Suite struct {
	engine *inference.Engine
	Name   string
}

type config struct {
	name   string
	params *domain.Params
	hooks  []domain.LifecycleHooks
	top    *int
	ranked bool
	opts   []inference.Option
}

// Option defines a functional option for configuring a Suite.
type Option func(*config)

// WithParams sets the probability parameters. Defaults to domain.DefaultParams.
func WithParams(p domain.Params) Option {
	return func(c *config) {
		c.params = &p
	}
}

// WithPlanner injects a custom planner, bypassing the built-in depth-first search.
func WithPlanner(p ports.Planner) Option {
	return func(c *config) {
		c.opts = append(c.opts, inference.WithPlanner(p))
	}
}

// WithLogger sets a custom structured logger. The suite is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.opts = append(c.opts, inference.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks. It may be given more
// than once; hooks fire in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, hooks)
	}
}

// WithConcurrency bounds the goroutines computing per-hypothesis factors.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.opts = append(c.opts, inference.WithConcurrency(n))
	}
}

// WithName labels the suite in logs and reports.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

func apply(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.params != nil {
		c.opts = append(c.opts, inference.WithParams(*c.params))
	}
	if len(c.hooks) > 0 {
		c.opts = append(c.opts, inference.WithLifecycleHooks(chain(c.hooks)))
	}
	return c
}

func chain(all []domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUpdate: func(ctx context.Context, e *domain.UpdateEvent) {
			for _, h := range all {
				if h.OnUpdate != nil {
					h.OnUpdate(ctx, e)
				}
			}
		},
		OnEvidenceSkipped: func(ctx context.Context, e *domain.SkipEvent) {
			for _, h := range all {
				if h.OnEvidenceSkipped != nil {
					h.OnEvidenceSkipped(ctx, e)
				}
			}
		},
	}
}

// New creates a suite for the goal. The prior maps every hypothesis to its
// initial odds against the baseline; the baseline is added with mass 1 when
// missing. It fails if no plan achieves the goal.
func New(goal domain.Goal, actions []domain.Action, prior domain.Masses, opts ...Option) (*Suite, error) {
	c := apply(opts)
	eng, err := inference.New(goal, actions, prior, c.opts...)
	if err != nil {
		return nil, err
	}
	return &Suite{engine: eng, Name: c.name}, nil
}

// NewUniform creates a suite where every hypothesis starts with mass 1.
func NewUniform(goal domain.Goal, actions []domain.Action, hypotheses []domain.Hypothesis, opts ...Option) (*Suite, error) {
	return New(goal, actions, domain.UniformPrior(hypotheses...), opts...)
}

// FromModel creates a suite from a dsl model.
func FromModel(m *dsl.Model, opts ...Option) (*Suite, error) {
	return New(m.Goal, m.Actions, m.Prior, opts...)
}

// Restore rebuilds a suite from a snapshot and resumes from its masses.
func Restore(snap *domain.Snapshot, opts ...Option) (*Suite, error) {
	c := apply(opts)
	eng, err := inference.FromSnapshot(snap, c.opts...)
	if err != nil {
		return nil, err
	}
	return &Suite{engine: eng, Name: c.name}, nil
}

// Update applies one observed trace.
func (s *Suite) Update(ctx context.Context, trace domain.Trace) error {
	return s.engine.Update(ctx, trace)
}

// UpdateTokens applies a trace in the "!" marker encoding.
func (s *Suite) UpdateTokens(ctx context.Context, tokens []string) error {
	return s.engine.UpdateTokens(ctx, tokens)
}

// UpdateMany applies traces in order.
func (s *Suite) UpdateMany(ctx context.Context, traces []domain.Trace) error {
	return s.engine.UpdateMany(ctx, traces)
}

// SetGoal switches to a new goal and rebuilds the plan corpus. Masses are kept.
func (s *Suite) SetGoal(goal domain.Goal) error {
	return s.engine.SetGoal(goal)
}

// Reset restores the prior.
func (s *Suite) Reset() {
	s.engine.Reset()
}

// Normalize leaves masses untouched: they are odds ratios. See Normalized.
func (s *Suite) Normalize() {
	s.engine.Normalize()
}

// Normalized returns the masses scaled to sum to 1.
func (s *Suite) Normalized() domain.Masses {
	return s.engine.Normalized()
}

// MostProbable returns the n most probable hypotheses extended through ties,
// and the effective count.
func (s *Suite) MostProbable(n int) ([]domain.Scored, int) {
	return s.engine.MostProbable(n)
}

// RankedReport returns every hypothesis by descending mass.
func (s *Suite) RankedReport() []domain.Scored {
	return s.engine.RankedReport()
}

// Mass returns the current mass of h.
func (s *Suite) Mass(h domain.Hypothesis) (float64, bool) {
	return s.engine.Mass(h)
}

// Goal returns the current goal.
func (s *Suite) Goal() domain.Goal {
	return s.engine.Goal()
}

// Actions returns the action set.
func (s *Suite) Actions() []domain.Action {
	return s.engine.Actions()
}

// Plans returns the plans achieving the current goal.
func (s *Suite) Plans() []domain.Plan {
	return s.engine.Plans()
}

// Paths returns the linearized plan paths of the current goal.
func (s *Suite) Paths() []domain.Path {
	return s.engine.Paths()
}

// Params returns the probability parameters.
func (s *Suite) Params() domain.Params {
	return s.engine.Params()
}

// Explains reports whether some plan contains the trace path.
func (s *Suite) Explains(trace domain.Trace) bool {
	return s.engine.Explains(trace)
}

// Snapshot captures the persistable state of the suite.
func (s *Suite) Snapshot() *domain.Snapshot {
	return s.engine.Snapshot()
}
