package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	Updates        prometheus.Counter
	Skipped        *prometheus.CounterVec
	Sanctions      prometheus.Counter
	UpdateDuration prometheus.Histogram
	Affected       prometheus.Gauge
}

// NewMetrics creates the collectors under the given namespace and registers
// them on reg. A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of traces committed to a suite",
		}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evidence_skipped_total",
			Help:      "Evidence contributions skipped, by model and reason",
		}, []string{"evidence", "reason"}),
		Sanctions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sanctions_observed_total",
			Help:      "Sanction markers seen in committed traces",
		}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_duration_seconds",
			Help:      "Time spent computing and committing one trace",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Affected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hypotheses_affected",
			Help:      "Hypotheses whose mass changed on the last update",
		}),
	}

	for _, c := range []prometheus.Collector{m.Updates, m.Skipped, m.Sanctions, m.UpdateDuration, m.Affected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks adapts the collectors to suite lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUpdate: func(_ context.Context, e *domain.UpdateEvent) {
			m.Updates.Inc()
			m.Sanctions.Add(float64(len(e.Trace.SanctionedPositions())))
			m.UpdateDuration.Observe(e.Duration.Seconds())
			m.Affected.Set(float64(e.HypothesesAffected))
		},
		OnEvidenceSkipped: func(_ context.Context, e *domain.SkipEvent) {
			m.Skipped.WithLabelValues(string(e.Evidence), reason(e.Err)).Inc()
		},
	}
}

func reason(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, domain.ErrNoExplanation):
		return "no_explanation"
	case errors.Is(err, domain.ErrZeroBaseline):
		return "zero_baseline"
	default:
		return "other"
	}
}
