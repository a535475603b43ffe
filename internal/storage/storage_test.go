package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the shared Store contract against a backend
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, "cart-storage", []byte(`[{"quantity":2}]`)))

	data, err := store.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"quantity":2}]`), data)

	// Overwriting replaces the previous snapshot
	require.NoError(t, store.Save(ctx, "cart-storage", []byte(`[]`)))
	data, err = store.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	// Keys are independent
	require.NoError(t, store.Save(ctx, "order-storage", []byte(`{"orders":[]}`)))
	data, err = store.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"a":1}`)
	require.NoError(t, store.Save(ctx, "k", payload))
	payload[2] = 'b'

	data, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	// Mutating a loaded copy must not corrupt the stored snapshot
	data[2] = 'c'
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	storeUnderTest(t, store)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "auth-storage", []byte(`{}`)))

	_, err = os.Stat(filepath.Join(dir, "auth-storage.json"))
	assert.NoError(t, err)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "order-storage", []byte(`{"n":1}`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	data, err := reopened.Load(ctx, "order-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"n":1}`), data)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "cart-storage", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart-storage.json", entries[0].Name())
}
