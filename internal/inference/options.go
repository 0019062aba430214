package inference

import (
	"log/slog"
	"time"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// Option configures an Engine.
type Option func(*Engine)

// WithParams sets the probability parameters of both likelihood models.
func WithParams(p domain.Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// WithPlanner replaces the default depth-first planner.
func WithPlanner(p ports.Planner) Option {
	return func(e *Engine) {
		e.planner = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConcurrency bounds the number of goroutines computing factors for a
// single trace. Values below 1 mean sequential computation.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithClock overrides the time source used for events and snapshots.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}
