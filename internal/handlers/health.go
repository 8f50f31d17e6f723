package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spooki4/ai-image-tagger/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
