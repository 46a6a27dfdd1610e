package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_PutGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	hash := HashContent([]byte("def f(): pass\n"))
	require.NoError(t, store.Put(ctx, &FileResult{
		Path:        "pkg/mod.py",
		ContentHash: hash,
		IssueCount:  2,
		Patch:       "--- pkg/mod.py\n+++ pkg/mod.py (mended)\n",
	}))

	got, err := store.Get(ctx, "pkg/mod.py", hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.IssueCount)
	assert.Contains(t, got.Patch, "mended")
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSQLiteStore_GetMissOnChangedContent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &FileResult{
		Path:        "pkg/mod.py",
		ContentHash: HashContent([]byte("old")),
	}))

	// same path, different content
	got, err := store.Get(ctx, "pkg/mod.py", HashContent([]byte("new")))
	require.NoError(t, err)
	assert.Nil(t, got)

	// unknown path
	got, err = store.Get(ctx, "other.py", HashContent([]byte("old")))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_PutReplacesPreviousResult(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	oldHash := HashContent([]byte("v1"))
	newHash := HashContent([]byte("v2"))
	require.NoError(t, store.Put(ctx, &FileResult{Path: "a.py", ContentHash: oldHash, IssueCount: 5}))
	require.NoError(t, store.Put(ctx, &FileResult{Path: "a.py", ContentHash: newHash, IssueCount: 0}))

	stale, err := store.Get(ctx, "a.py", oldHash)
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := store.Get(ctx, "a.py", newHash)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, 0, fresh.IssueCount)
}

func TestSQLiteStore_Forget(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	hash := HashContent([]byte("v1"))
	require.NoError(t, store.Put(ctx, &FileResult{Path: "a.py", ContentHash: hash}))
	require.NoError(t, store.Forget(ctx, "a.py"))

	got, err := store.Get(ctx, "a.py", hash)
	require.NoError(t, err)
	assert.Nil(t, got)
}
