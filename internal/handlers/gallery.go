package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spooki4/ai-image-tagger/internal/models"
	"github.com/spooki4/ai-image-tagger/internal/services"
)

type GalleryHandler struct {
	ingest *services.IngestService
	log    *zap.Logger
}

func NewGalleryHandler(ingest *services.IngestService, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		ingest: ingest,
		log:    log,
	}
}

// Index renders the gallery with all committed records. Upload outcomes
// arrive as query parameters set by the upload redirect.
func (h *GalleryHandler) Index(c *gin.Context) {
	records, err := h.ingest.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list images", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load images")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Images":   records,
		"Uploaded": c.Query("uploaded") == "1",
		"Error":    c.Query("error"),
	})
}

// ListImages is the JSON counterpart of Index.
func (h *GalleryHandler) ListImages(c *gin.Context) {
	records, err := h.ingest.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list images", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list images"})
		return
	}

	resp := models.ImageListResponse{Images: make([]models.ImageResponse, 0, len(records))}
	for _, rec := range records {
		resp.Images = append(resp.Images, models.ImageResponse{
			ID:           rec.ID,
			OriginalName: rec.OriginalName,
			URL:          "/images/" + rec.StorageName,
			Tags:         rec.Tags,
			Description:  rec.Description,
			CreatedAt:    rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
