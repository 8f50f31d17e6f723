package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spooki4/ai-image-tagger/internal/config"
	"github.com/spooki4/ai-image-tagger/internal/database"
	"github.com/spooki4/ai-image-tagger/internal/gemini"
	"github.com/spooki4/ai-image-tagger/internal/handlers"
	"github.com/spooki4/ai-image-tagger/internal/services"
	"github.com/spooki4/ai-image-tagger/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var blobs storage.BlobStore
	switch cfg.StorageBackend {
	case "supabase":
		blobs = storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	default:
		blobs = storage.NewLocalStore(cfg.UploadDir)
	}
	if err := blobs.EnsureReady(); err != nil {
		logger.Fatal("failed to prepare blob storage", zap.Error(err))
	}

	var store database.ImageStore
	switch cfg.DatabaseDriver {
	case "postgres":
		store, err = database.NewPostgresStore(cfg.DatabaseURL)
	default:
		store, err = database.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		logger.Fatal("failed to open metadata store", zap.Error(err))
	}
	defer store.Close()

	analyzer := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey,
		cfg.DescriptionLanguage, cfg.GeminiTimeout)
	ingest := services.NewIngestService(analyzer, blobs, store, logger)

	galleryHandler := handlers.NewGalleryHandler(ingest, logger)
	uploadHandler := handlers.NewUploadHandler(ingest, cfg.MaxUploadSize, logger)
	imagesHandler := handlers.NewImagesHandler(blobs, logger)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.LoadHTMLGlob("web/templates/*")

	router.GET("/health", handlers.HealthHandler)
	router.GET("/", galleryHandler.Index)
	router.POST("/upload", uploadHandler.Upload)
	router.GET("/images/:filename", imagesHandler.Serve)

	api := router.Group("/api")
	api.Use(cors.Default())
	api.GET("/images", galleryHandler.ListImages)

	addr := cfg.Host + ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
