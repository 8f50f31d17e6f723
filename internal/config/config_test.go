package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spooki4/ai-image-tagger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidate_SupabaseBackendNeedsCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORAGE_BACKEND", "supabase")
	t.Setenv("SUPABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}

func TestValidate_PostgresNeedsURL(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_UnknownBackend(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORAGE_BACKEND", "ftp")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}
