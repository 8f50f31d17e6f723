package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spooki4/ai-image-tagger/internal/storage"
)

func TestLocalStore_SaveAndRead(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	require.NoError(t, store.EnsureReady())

	data := []byte("image bytes")
	path, err := store.Save("blob.png", data)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path), "storage path should be absolute: %s", path)

	got, err := store.Read("blob.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStore_ReadMissing(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	require.NoError(t, store.EnsureReady())

	_, err := store.Read("nope.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	require.NoError(t, store.EnsureReady())

	_, err := store.Save("../escape.png", []byte("x"))
	assert.Error(t, err)

	_, err = store.Read("../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStore_EnsureReadyIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	store := storage.NewLocalStore(root)

	require.NoError(t, store.EnsureReady())
	require.NoError(t, store.EnsureReady())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStore_FailedSaveLeavesNoPartialFiles(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalStore(root)
	require.NoError(t, store.EnsureReady())

	// A directory squatting on the destination makes the finalize step fail.
	require.NoError(t, os.Mkdir(filepath.Join(root, "blob.png"), 0o755))

	_, err := store.Save("blob.png", []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the pre-existing directory should remain")
	assert.Equal(t, "blob.png", entries[0].Name())
}

func TestLocalStore_NoTemporaryLeftovers(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalStore(root)
	require.NoError(t, store.EnsureReady())

	_, err := store.Save("blob.jpg", []byte("x"))
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blob.jpg", entries[0].Name())
}
