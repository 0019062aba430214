package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/normsuite/pkg/adapters/memory"
	"github.com/aretw0/normsuite/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSuiteStoreContract(t, store)
}

func TestMemoryLocker(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "suite-1", time.Second)
	require.NoError(t, err)

	// A different key is independent.
	other, err := locker.Lock(ctx, "suite-2", time.Second)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(short, "suite-1", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "unlock is idempotent")

	again, err := locker.Lock(ctx, "suite-1", time.Second)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}
