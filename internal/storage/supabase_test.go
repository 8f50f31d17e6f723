package storage_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spooki4/ai-image-tagger/internal/storage"
)

func TestSupabaseStore_ReadMissingMapsToNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"statusCode":"404","error":"not_found","message":"Object not found"}`))
	}))
	defer server.Close()

	store := storage.NewSupabaseStore(server.URL, "service-key", "images")

	_, err := store.Read("missing.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSupabaseStore_ReadReturnsBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png bytes"))
	}))
	defer server.Close()

	store := storage.NewSupabaseStore(server.URL, "service-key", "images")

	data, err := store.Read("blob.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestSupabaseStore_ReadRejectsTraversal(t *testing.T) {
	store := storage.NewSupabaseStore("http://localhost:1", "service-key", "images")

	_, err := store.Read("../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
