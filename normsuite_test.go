package normsuite

import (
	"context"
	"testing"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/dsl"
	"github.com/aretw0/normsuite/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleModel(t *testing.T) *dsl.Model {
	t.Helper()
	b := dsl.New()
	b.Action("a", "b").Action("b", "e").Action("b", "c").Action("b", "d")
	b.Action("a", "f").Action("a", "c", "e").Action("e", "d")
	b.Goal("a", "d").Enumerate(0.05)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestSuite_NeverCEndToEnd(t *testing.T) {
	s, err := FromModel(exampleModel(t))
	require.NoError(t, err)
	ctx := context.Background()
	neverC := domain.Unconditional(domain.ModalityNever, "c")

	require.NoError(t, s.UpdateTokens(ctx, []string{"a", "b", "d"}))
	afterAvoid, _ := s.Mass(neverC)
	base, _ := s.Mass(domain.NoNorm())
	assert.Greater(t, afterAvoid/base, 0.05, "avoiding c raises never c against the baseline")

	require.NoError(t, s.UpdateTokens(ctx, []string{"a", "c", "e", "d"}))
	afterVisit, _ := s.Mass(neverC)
	assert.Less(t, afterVisit, afterAvoid, "visiting c lowers never c")
}

func TestSuite_SanctionsRaiseNorm(t *testing.T) {
	s, err := FromModel(exampleModel(t))
	require.NoError(t, err)
	ctx := context.Background()
	neverC := domain.Unconditional(domain.ModalityNever, "c")
	neverB := domain.Unconditional(domain.ModalityNever, "b")

	// c is punished every time it is visited.
	for i := 0; i < 3; i++ {
		require.NoError(t, s.UpdateTokens(ctx, []string{"a", "c", "!", "e", "d"}))
		require.NoError(t, s.UpdateTokens(ctx, []string{"a", "b", "d"}))
	}

	c, _ := s.Mass(neverC)
	b, _ := s.Mass(neverB)
	assert.Greater(t, c, 0.05*3)
	assert.Greater(t, c, b)
}

func TestSuite_HooksChain(t *testing.T) {
	var first, second int
	s, err := FromModel(exampleModel(t),
		WithLifecycleHooks(domain.LifecycleHooks{OnUpdate: func(context.Context, *domain.UpdateEvent) { first++ }}),
		WithLifecycleHooks(domain.LifecycleHooks{OnUpdate: func(context.Context, *domain.UpdateEvent) { second++ }}),
	)
	require.NoError(t, err)

	require.NoError(t, s.UpdateTokens(context.Background(), []string{"a", "b"}))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestSuite_NormalizeIsNoOp(t *testing.T) {
	s, err := FromModel(exampleModel(t))
	require.NoError(t, err)
	require.NoError(t, s.UpdateTokens(context.Background(), []string{"a", "c", "!", "e", "d"}))

	before := s.Snapshot().Masses
	s.Normalize()
	assert.Equal(t, before, s.Snapshot().Masses)

	total := 0.0
	for _, v := range s.Normalized() {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestRestore(t *testing.T) {
	s, err := FromModel(exampleModel(t), WithParams(domain.Params{NonCompliance: 0.2, Detect: 0.5, Sanction: 0.5, Random: 0.05}))
	require.NoError(t, err)
	require.NoError(t, s.UpdateTokens(context.Background(), []string{"a", "b", "d", "!"}))

	restored, err := Restore(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, s.Params(), restored.Params())
	assert.Equal(t, s.RankedReport(), restored.RankedReport())
}

func TestInfer(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: corridor
goal: {start: a, target: d}
actions: [a->b, b->e, b->c, b->d, a->f, a->c->e, e->d]
enumerate: true
traces:
  - a c e d
  - a b d !
  - a f
top: 2
`), "yaml")
	require.NoError(t, err)

	report, err := Infer(context.Background(), sc, WithRanked())
	require.NoError(t, err)

	assert.Equal(t, "corridor", report.Name)
	assert.Equal(t, 3, report.Observations)
	assert.Len(t, report.Plans, 3)
	assert.Equal(t, 2, report.Requested)
	assert.GreaterOrEqual(t, report.Effective, 2)
	assert.Len(t, report.Top, report.Effective)
	assert.Len(t, report.Ranked, 101)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "a f", report.Skipped[0].Trace)
	assert.Equal(t, domain.EvidencePlans, report.Skipped[0].Evidence)

	report, err = Infer(context.Background(), sc, WithTop(1))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Requested)
	assert.Empty(t, report.Ranked)
}

func TestNew_NoPlan(t *testing.T) {
	_, err := NewUniform(domain.Goal{Start: "a", Target: "z"}, []domain.Action{domain.NewAction("a", "b")}, nil)
	assert.ErrorIs(t, err, domain.ErrNoPlan)
}
