package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSuiteStoreContract runs a suite of tests to verify that a SuiteStore implementation
// adheres to the defined interface contract.
func RunSuiteStoreContract(t *testing.T, store SuiteStore) {
	ctx := context.Background()
	suiteID := "contract-test-suite-" + time.Now().Format("20060102150405")

	newSnapshot := func() *domain.Snapshot {
		never := domain.Unconditional(domain.ModalityNever, "c")
		return &domain.Snapshot{
			Goal:         domain.Goal{Start: "a", Target: "d"},
			Actions:      []domain.Action{domain.NewAction("a", "b"), domain.NewAction("b", "d")},
			Params:       domain.DefaultParams(),
			Prior:        domain.Masses{domain.NoNorm(): 1, never: 0.05},
			Masses:       domain.Masses{domain.NoNorm(): 1, never: 0.125},
			Observations: 2,
			UpdatedAt:    time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot()

		err := store.Save(ctx, suiteID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, suiteID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Goal, loaded.Goal)
		assert.Equal(t, snap.Actions, loaded.Actions)
		assert.Equal(t, snap.Params, loaded.Params)
		assert.Equal(t, snap.Masses, loaded.Masses)
		assert.Equal(t, snap.Prior, loaded.Prior)
		assert.Equal(t, 2, loaded.Observations)
		assert.True(t, snap.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, suiteID)
		require.NoError(t, err)
		loaded.Masses[domain.NoNorm()] = 42

		again, err := store.Load(ctx, suiteID)
		require.NoError(t, err)
		assert.Equal(t, 1.0, again.Masses[domain.NoNorm()], "mutating a loaded snapshot must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+suiteID)
		assert.ErrorIs(t, err, domain.ErrSuiteNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, suiteID, newSnapshot())
		require.NoError(t, err)

		err = store.Delete(ctx, suiteID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, suiteID)
		assert.ErrorIs(t, err, domain.ErrSuiteNotFound, "Load after Delete should return ErrSuiteNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := suiteID + "-1"
		id2 := suiteID + "-2"
		_ = store.Save(ctx, id1, newSnapshot())
		_ = store.Save(ctx, id2, newSnapshot())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		suites, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, suites, id1)
		assert.Contains(t, suites, id2)
	})
}
