package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spooki4/ai-image-tagger/internal/models"
	"github.com/spooki4/ai-image-tagger/internal/storage"
)

type ImagesHandler struct {
	blobs storage.BlobStore
	log   *zap.Logger
}

func NewImagesHandler(blobs storage.BlobStore, log *zap.Logger) *ImagesHandler {
	return &ImagesHandler{
		blobs: blobs,
		log:   log,
	}
}

// Serve streams a stored blob by its storage name. The name is validated
// before it touches the store, so traversal sequences never resolve.
func (h *ImagesHandler) Serve(c *gin.Context) {
	name := c.Param("filename")
	if err := storage.ValidateStorageName(name); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image name"})
		return
	}

	data, err := h.blobs.Read(name)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
		return
	}
	if err != nil {
		h.log.Error("failed to read blob", zap.String("storage_name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read image"})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}
