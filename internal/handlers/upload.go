package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spooki4/ai-image-tagger/internal/services"
)

type UploadHandler struct {
	ingest        *services.IngestService
	maxUploadSize int64
	log           *zap.Logger
}

func NewUploadHandler(ingest *services.IngestService, maxUploadSize int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		ingest:        ingest,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Upload accepts a single "file" field and runs it through the ingest
// pipeline. It always exits with a redirect back to the listing view,
// carrying a success flag or an error message as query parameters.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		redirectWithError(c, "no file provided")
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		redirectWithError(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxUploadSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded file", zap.Error(err))
		redirectWithError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("failed to read uploaded file", zap.Error(err))
		redirectWithError(c, "failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data)
	}

	if _, err := h.ingest.Ingest(c.Request.Context(), data, fileHeader.Filename, contentType); err != nil {
		h.log.Error("ingest failed",
			zap.String("original_name", fileHeader.Filename), zap.Error(err))
		redirectWithError(c, userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/?uploaded=1")
}

func redirectWithError(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(msg))
}

// userMessage maps a pipeline error to a message fit for the listing view.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyFile):
		return "uploaded file is empty"
	case errors.Is(err, services.ErrMissingName):
		return "uploaded file has no name"
	}

	var stageErr *services.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case services.StageStore:
			return "failed to store the image"
		case services.StageAnalysis:
			return "image analysis failed"
		case services.StagePersist:
			return "failed to save image metadata"
		}
	}
	return "upload failed"
}
