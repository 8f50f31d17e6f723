package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Host        string
	Port        string
	Environment string

	// Gemini API
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	GeminiTimeout       time.Duration
	DescriptionLanguage string

	// Blob storage
	StorageBackend string
	UploadDir      string
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	// Metadata store
	DatabaseDriver string
	SQLitePath     string
	DatabaseURL    string

	MaxUploadSize int64
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-latest")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GEMINI_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DESCRIPTION_LANGUAGE", "English")
	viper.SetDefault("STORAGE_BACKEND", "local")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("SUPABASE_BUCKET", "images")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "data/images.db")
	viper.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024) // 10MB

	viper.AutomaticEnv()

	cfg := &Config{
		Host:        viper.GetString("SERVER_HOST"),
		Port:        viper.GetString("SERVER_PORT"),
		Environment: viper.GetString("ENVIRONMENT"),

		GeminiAPIKey:        viper.GetString("GEMINI_API_KEY"),
		GeminiModel:         viper.GetString("GEMINI_MODEL"),
		GeminiBaseURL:       viper.GetString("GEMINI_BASE_URL"),
		GeminiTimeout:       time.Duration(viper.GetInt("GEMINI_TIMEOUT_SECONDS")) * time.Second,
		DescriptionLanguage: viper.GetString("DESCRIPTION_LANGUAGE"),

		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		UploadDir:      viper.GetString("UPLOAD_DIR"),
		SupabaseURL:    viper.GetString("SUPABASE_URL"),
		SupabaseKey:    viper.GetString("SUPABASE_KEY"),
		SupabaseBucket: viper.GetString("SUPABASE_BUCKET"),

		DatabaseDriver: viper.GetString("DATABASE_DRIVER"),
		SQLitePath:     viper.GetString("SQLITE_PATH"),
		DatabaseURL:    viper.GetString("DATABASE_URL"),

		MaxUploadSize: viper.GetInt64("MAX_UPLOAD_SIZE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be positive")
	}
	switch c.StorageBackend {
	case "local":
	case "supabase":
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase storage backend")
		}
		if c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_KEY is required for the supabase storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}
