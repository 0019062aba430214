package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/normsuite/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("normsuite", reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	trace, err := domain.ParseTraceString("a b ! d")
	require.NoError(t, err)

	hooks.OnUpdate(context.Background(), &domain.UpdateEvent{
		Trace:              trace,
		HypothesesAffected: 7,
		Duration:           2 * time.Millisecond,
	})
	hooks.OnEvidenceSkipped(context.Background(), &domain.SkipEvent{
		Evidence: domain.EvidencePlans,
		Err:      &domain.NoExplanationError{Path: trace.Path()},
	})
	hooks.OnEvidenceSkipped(context.Background(), &domain.SkipEvent{
		Evidence: domain.EvidenceSanctions,
		Err:      domain.ErrZeroBaseline,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Updates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sanctions))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Affected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped.WithLabelValues("plans", "no_explanation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped.WithLabelValues("sanctions", "zero_baseline")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpdateDuration))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics("normsuite", reg)
	require.NoError(t, err)

	_, err = NewMetrics("normsuite", reg)
	assert.Error(t, err)
}
