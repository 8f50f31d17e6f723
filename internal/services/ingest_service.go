package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spooki4/ai-image-tagger/internal/database"
	"github.com/spooki4/ai-image-tagger/internal/gemini"
	"github.com/spooki4/ai-image-tagger/internal/storage"
)

// Stage identifies which step of the ingest pipeline failed.
type Stage string

const (
	StageStore    Stage = "store"
	StageAnalysis Stage = "analysis"
	StagePersist  Stage = "persist"
)

var (
	ErrEmptyFile   = errors.New("ingest: uploaded file is empty")
	ErrMissingName = errors.New("ingest: original filename is missing")
)

// StageError tags a pipeline failure with the stage that produced it, so
// every failure is attributable to exactly one step.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingest: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Analyzer is the slice of the Gemini client the pipeline depends on.
type Analyzer interface {
	Analyze(ctx context.Context, imageBytes []byte, mimeType string, kind gemini.PromptKind) (string, error)
}

// IngestService runs the ingest-analyze-persist pipeline: it accepts raw
// file bytes, writes the blob under a generated name, derives tags and a
// description from the AI backend, and commits the metadata record.
type IngestService struct {
	analyzer Analyzer
	blobs    storage.BlobStore
	store    database.ImageStore
	log      *zap.Logger
}

func NewIngestService(analyzer Analyzer, blobs storage.BlobStore, store database.ImageStore, log *zap.Logger) *IngestService {
	return &IngestService{
		analyzer: analyzer,
		blobs:    blobs,
		store:    store,
		log:      log,
	}
}

// Ingest processes one upload end to end and returns the committed record.
// Any failure aborts the invocation and produces no metadata record. A
// failure after the blob write leaves the blob behind; orphans are logged,
// not compensated.
func (s *IngestService) Ingest(ctx context.Context, data []byte, originalName, mimeType string) (*database.ImageRecord, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if originalName == "" {
		return nil, ErrMissingName
	}

	storageName := storage.NewStorageName(originalName)
	storagePath, err := s.blobs.Save(storageName, data)
	if err != nil {
		return nil, &StageError{Stage: StageStore, Err: err}
	}

	// Both analyses read the same immutable bytes, so they run concurrently
	// and join before the commit.
	var tags, description string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tags, err = s.analyzer.Analyze(gctx, data, mimeType, gemini.PromptTags)
		return err
	})
	g.Go(func() error {
		var err error
		description, err = s.analyzer.Analyze(gctx, data, mimeType, gemini.PromptDescription)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("analysis failed, blob left orphaned",
			zap.String("storage_name", storageName), zap.Error(err))
		return nil, &StageError{Stage: StageAnalysis, Err: err}
	}

	rec := &database.ImageRecord{
		OriginalName: originalName,
		StorageName:  storageName,
		StoragePath:  storagePath,
		Tags:         tags,
		Description:  description,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Warn("metadata commit failed, blob left orphaned",
			zap.String("storage_name", storageName), zap.Error(err))
		return nil, &StageError{Stage: StagePersist, Err: err}
	}

	s.log.Info("image ingested",
		zap.Int64("id", rec.ID),
		zap.String("original_name", originalName),
		zap.String("storage_name", storageName))
	return rec, nil
}

// List returns every committed record in primary-key order.
func (s *IngestService) List(ctx context.Context) ([]database.ImageRecord, error) {
	return s.store.FindAll(ctx)
}
