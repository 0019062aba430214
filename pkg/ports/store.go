package ports

import (
	"context"

	"github.com/aretw0/normsuite/pkg/domain"
)

// SuiteStore defines the interface for persisting suite snapshots.
// This allows a suite to accumulate evidence across processes.
type SuiteStore interface {
	// Save persists the snapshot for a given suite ID.
	Save(ctx context.Context, suiteID string, snapshot *domain.Snapshot) error

	// Load retrieves the snapshot for a given suite ID.
	// Returns domain.ErrSuiteNotFound if the suite does not exist.
	Load(ctx context.Context, suiteID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given suite ID.
	Delete(ctx context.Context, suiteID string) error

	// List returns the IDs of every stored suite.
	List(ctx context.Context) ([]string, error)
}
