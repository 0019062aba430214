package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// ErrCorruptSnapshot is returned when a snapshot fails integrity checks.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

type validationMiddleware struct {
	next ports.SuiteStore
}

// NewValidationMiddleware creates a middleware that checks snapshots on the
// way in and out of the store, so a tampered or truncated record never
// reaches an engine.
func NewValidationMiddleware() Middleware {
	return func(next ports.SuiteStore) ports.SuiteStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, suiteID string, snapshot *domain.Snapshot) error {
	if err := checkSnapshot(snapshot); err != nil {
		return fmt.Errorf("refusing to save suite %s: %w", suiteID, err)
	}
	return m.next.Save(ctx, suiteID, snapshot)
}

func (m *validationMiddleware) Load(ctx context.Context, suiteID string) (*domain.Snapshot, error) {
	snap, err := m.next.Load(ctx, suiteID)
	if err != nil {
		return nil, err
	}
	if err := checkSnapshot(snap); err != nil {
		return nil, fmt.Errorf("suite %s: %w", suiteID, err)
	}
	return snap, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, suiteID string) error {
	return m.next.Delete(ctx, suiteID)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func checkSnapshot(s *domain.Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrCorruptSnapshot)
	}
	if s.Goal.Start == "" || s.Goal.Target == "" {
		return fmt.Errorf("%w: goal is incomplete", ErrCorruptSnapshot)
	}
	if len(s.Actions) == 0 {
		return fmt.Errorf("%w: no actions", ErrCorruptSnapshot)
	}
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if s.Observations < 0 {
		return fmt.Errorf("%w: negative observation count", ErrCorruptSnapshot)
	}
	for h, mass := range s.Masses {
		if math.IsNaN(mass) || math.IsInf(mass, 0) || mass < 0 {
			return fmt.Errorf("%w: invalid mass %v for %s", ErrCorruptSnapshot, mass, h)
		}
		if _, ok := s.Prior[h]; !ok && !h.IsNoNorm() {
			return fmt.Errorf("%w: %s has a mass but no prior", ErrCorruptSnapshot, h)
		}
	}
	return nil
}
