package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/normsuite/pkg/adapters/file"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSuiteStoreContract(t, store)
}

func TestFileStore_ListEmptyDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()
	snap := &domain.Snapshot{}

	assert.Error(t, store.Save(ctx, "", snap))
	assert.Error(t, store.Save(ctx, "../escape", snap))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_Overwrite(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	first := &domain.Snapshot{Observations: 1}
	second := &domain.Snapshot{Observations: 2}
	require.NoError(t, store.Save(ctx, "s", first))
	require.NoError(t, store.Save(ctx, "s", second))

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Observations)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}
