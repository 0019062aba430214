// Package inference applies observed traces to a hypothesis suite.
//
// Every update computes the baseline likelihoods once, derives one factor
// per hypothesis (optionally in parallel), and commits all factors in a
// single sequential pass. A call that fails leaves the masses untouched.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/normsuite/internal/corpus"
	"github.com/aretw0/normsuite/internal/likelihood"
	"github.com/aretw0/normsuite/internal/logging"
	"github.com/aretw0/normsuite/internal/planner"
	"github.com/aretw0/normsuite/internal/ranking"
	"github.com/aretw0/normsuite/internal/suite"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// Engine owns a suite, the plan corpus of the current goal and the model parameters.
//
// Thread Safety: Safe for concurrent use. Updates are serialized.
type Engine struct {
	mu sync.RWMutex

	planner     ports.Planner
	params      domain.Params
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	concurrency int
	now         func() time.Time

	actions      []domain.Action
	corpus       *corpus.Corpus
	suite        *suite.Suite
	observations int
	updatedAt    time.Time
}

// New creates an engine for the goal. It fails if the parameters are out of
// range, a prior hypothesis is malformed or no plan achieves the goal.
func New(goal domain.Goal, actions []domain.Action, prior domain.Masses, opts ...Option) (*Engine, error) {
	e := &Engine{
		params:      domain.DefaultParams(),
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.planner == nil {
		e.planner = planner.New(planner.DefaultConfig())
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	if err := e.params.Validate(); err != nil {
		return nil, err
	}

	s, err := suite.New(prior)
	if err != nil {
		return nil, fmt.Errorf("invalid prior: %w", err)
	}

	e.actions = append([]domain.Action(nil), actions...)
	c, err := corpus.Build(e.planner, goal, e.actions)
	if err != nil {
		return nil, err
	}

	e.suite = s
	e.corpus = c
	e.updatedAt = e.now()
	return e, nil
}

// Update applies one observed trace.
func (e *Engine) Update(ctx context.Context, trace domain.Trace) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.update(ctx, trace)
}

// UpdateTokens parses the legacy marker encoding and applies the trace.
func (e *Engine) UpdateTokens(ctx context.Context, tokens []string) error {
	trace, err := domain.ParseTokens(tokens)
	if err != nil {
		return err
	}
	return e.Update(ctx, trace)
}

// UpdateMany applies traces strictly in order. It stops at the first fatal
// error; traces before it stay applied.
func (e *Engine) UpdateMany(ctx context.Context, traces []domain.Trace) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, trace := range traces {
		if err := e.update(ctx, trace); err != nil {
			return fmt.Errorf("trace %d: %w", i, err)
		}
	}
	return nil
}

func (e *Engine) update(ctx context.Context, trace domain.Trace) error {
	start := e.now()
	path := trace.Path()
	sanctioned := trace.SanctionedPositions()

	sanctionBase, err := likelihood.Sanctions(path, sanctioned, domain.NoNorm(), e.params)
	if err != nil {
		return err
	}
	useSanctions := sanctionBase > 0
	if !useSanctions {
		e.skip(ctx, trace, domain.EvidenceSanctions, domain.ErrZeroBaseline)
	}

	planBase, err := likelihood.Plans(e.corpus, path, domain.NoNorm(), e.params)
	usePlans := err == nil && planBase > 0
	switch {
	case errors.Is(err, domain.ErrNoExplanation):
		e.skip(ctx, trace, domain.EvidencePlans, err)
	case err != nil:
		return err
	}

	hypotheses := e.suite.Hypotheses()
	factors := make([]float64, len(hypotheses))

	limit := e.concurrency
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, h := range hypotheses {
		if h.IsNoNorm() {
			factors[i] = 1
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := e.factor(path, sanctioned, h, useSanctions, sanctionBase, usePlans, planBase)
			if err != nil {
				return fmt.Errorf("hypothesis %s: %w", h, err)
			}
			factors[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to update with trace %q: %w", trace, err)
	}

	affected := 0
	for i, h := range hypotheses {
		if h.IsNoNorm() {
			continue
		}
		if err := e.suite.Mult(h, factors[i]); err != nil {
			// Factors were checked before commit.
			return fmt.Errorf("failed to commit trace %q: %w", trace, err)
		}
		if factors[i] != 1 {
			affected++
		}
	}
	e.observations++
	e.updatedAt = e.now()

	e.logger.DebugContext(ctx, "trace applied",
		"trace", trace.String(),
		"sanctions", len(sanctioned),
		"sanction_baseline", sanctionBase,
		"plan_baseline", planBase,
		"plan_evidence", usePlans,
		"affected", affected,
	)

	if e.hooks.OnUpdate != nil {
		e.hooks.OnUpdate(ctx, &domain.UpdateEvent{
			EventBase: domain.EventBase{
				Timestamp: e.updatedAt,
				Type:      domain.EventUpdate,
			},
			Trace:              trace,
			SanctionBaseline:   sanctionBase,
			PlanBaseline:       planBase,
			PlanEvidence:       usePlans,
			HypothesesAffected: affected,
			Duration:           e.updatedAt.Sub(start),
		})
	}
	return nil
}

func (e *Engine) factor(path domain.Path, sanctioned map[int]bool, h domain.Hypothesis, useSanctions bool, sanctionBase float64, usePlans bool, planBase float64) (float64, error) {
	f := 1.0
	if useSanctions {
		l, err := likelihood.Sanctions(path, sanctioned, h, e.params)
		if err != nil {
			return 0, err
		}
		f *= l / sanctionBase
	}
	if usePlans {
		l, err := likelihood.Plans(e.corpus, path, h, e.params)
		if err != nil {
			return 0, err
		}
		f *= l / planBase
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("factor %v is not finite", f)
	}
	return f, nil
}

func (e *Engine) skip(ctx context.Context, trace domain.Trace, evidence domain.Evidence, err error) {
	e.logger.WarnContext(ctx, "skipping evidence for trace",
		"evidence", evidence,
		"trace", trace.String(),
		"error", err,
	)
	if e.hooks.OnEvidenceSkipped != nil {
		e.hooks.OnEvidenceSkipped(ctx, &domain.SkipEvent{
			EventBase: domain.EventBase{
				Timestamp: e.now(),
				Type:      domain.EventEvidenceSkipped,
			},
			Trace:    trace,
			Evidence: evidence,
			Err:      err,
		})
	}
}

// SetGoal rebuilds the plan corpus for a new goal. Masses are kept.
// On failure the previous goal stays in force.
func (e *Engine) SetGoal(goal domain.Goal) error {
	c, err := corpus.Build(e.planner, goal, e.actions)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.corpus = c
	e.logger.Info("goal changed", "goal", goal.String(), "plans", c.Len())
	return nil
}

// Reset restores the prior masses and clears the observation count.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suite.Reset()
	e.observations = 0
	e.updatedAt = e.now()
}

// MostProbable returns the n most probable hypotheses, extended through ties
// at the cutoff, and the effective count.
func (e *Engine) MostProbable(n int) ([]domain.Scored, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ranking.Top(e.suite.Items(), n)
}

// RankedReport returns every hypothesis ordered by descending mass.
func (e *Engine) RankedReport() []domain.Scored {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ranking.Sort(e.suite.Items())
}

// Normalize forwards to the mass store, which keeps masses unnormalized.
func (e *Engine) Normalize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suite.Normalize()
}

// Normalized returns the masses scaled to sum to 1.
func (e *Engine) Normalized() domain.Masses {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.suite.Normalized()
}

// Mass returns the current mass of h.
func (e *Engine) Mass(h domain.Hypothesis) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.suite.Mass(h)
}

// Goal returns the goal of the current corpus.
func (e *Engine) Goal() domain.Goal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.corpus.Goal()
}

// Plans returns the plans of the current goal.
func (e *Engine) Plans() []domain.Plan {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.corpus.Plans()
}

// Paths returns the linearized plan paths of the current goal.
func (e *Engine) Paths() []domain.Path {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.corpus.Paths()
}

// Actions returns the action set.
func (e *Engine) Actions() []domain.Action {
	return append([]domain.Action(nil), e.actions...)
}

// Params returns the model parameters.
func (e *Engine) Params() domain.Params {
	return e.params
}

// Explains reports whether some plan of the current goal contains the trace path.
func (e *Engine) Explains(trace domain.Trace) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.corpus.Consistent(trace.Path())) > 0
}

// Snapshot captures the persistable state of the engine.
func (e *Engine) Snapshot() *domain.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return &domain.Snapshot{
		Goal:         e.corpus.Goal(),
		Actions:      e.Actions(),
		Params:       e.params,
		Prior:        e.suite.Prior(),
		Masses:       e.suite.Masses(),
		Observations: e.observations,
		UpdatedAt:    e.updatedAt,
	}
}

// FromSnapshot rebuilds an engine and resumes from the stored masses.
// The snapshot parameters override any WithParams option.
func FromSnapshot(snap *domain.Snapshot, opts ...Option) (*Engine, error) {
	opts = append(opts, WithParams(snap.Params))
	e, err := New(snap.Goal, snap.Actions, snap.Prior, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.suite.Restore(snap.Masses); err != nil {
		return nil, fmt.Errorf("failed to restore masses: %w", err)
	}
	e.observations = snap.Observations
	if !snap.UpdatedAt.IsZero() {
		e.updatedAt = snap.UpdatedAt
	}
	return e, nil
}
