package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SuiteStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store call at
// debug level and failures at warn level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SuiteStore) ports.SuiteStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, suiteID string, start time.Time, err error) {
	if err != nil {
		m.logger.WarnContext(ctx, "suite store call failed", "op", op, "suite_id", suiteID, "error", err)
		return
	}
	m.logger.DebugContext(ctx, "suite store call", "op", op, "suite_id", suiteID, "duration", time.Since(start))
}

func (m *loggingMiddleware) Save(ctx context.Context, suiteID string, snapshot *domain.Snapshot) error {
	start := time.Now()
	err := m.next.Save(ctx, suiteID, snapshot)
	m.log(ctx, "save", suiteID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, suiteID string) (*domain.Snapshot, error) {
	start := time.Now()
	snap, err := m.next.Load(ctx, suiteID)
	m.log(ctx, "load", suiteID, start, err)
	return snap, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, suiteID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, suiteID)
	m.log(ctx, "delete", suiteID, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
