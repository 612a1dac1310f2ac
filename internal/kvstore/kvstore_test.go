// internal/kvstore/kvstore_test.go
package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockml/stockml/internal/core"
)

// roundTrip exercises the Store contract shared by every backend.
func roundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "user")
	assert.True(t, errors.Is(err, core.ErrKeyNotFound), "missing key should return ErrKeyNotFound")

	require.NoError(t, store.Set(ctx, "user", []byte(`{"id":"u1"}`)))

	got, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"u1"}`), got)

	// Overwrite
	require.NoError(t, store.Set(ctx, "user", []byte(`{"id":"u2"}`)))
	got, err = store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"u2"}`), got)

	require.NoError(t, store.Delete(ctx, "user"))
	_, err = store.Get(ctx, "user")
	assert.True(t, errors.Is(err, core.ErrKeyNotFound))

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "user"))
}

func TestMemory_RoundTrip(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestMemory_Len(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	assert.Equal(t, 2, m.Len())
}

func TestLocalFS_RoundTrip(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	require.NoError(t, err)
	roundTrip(t, store)
}

func TestLocalFS_KeyCannotEscapeBase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFS(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "../outside", []byte("x")))

	got, err := store.Get(ctx, "../outside")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	// The file must live under the base directory.
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSQLite_RoundTrip(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer store.Close()

	roundTrip(t, store)
}
