package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/app"
	"github.com/forkcast/backend/internal/middleware"
	"github.com/forkcast/backend/internal/types"
)

// ImageHandler handles on-demand image regeneration from the detail view.
type ImageHandler struct {
	controller  *app.Controller
	rateLimiter *middleware.RateLimiter
}

// NewImageHandler creates a new image handler
func NewImageHandler(controller *app.Controller, rateLimiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{
		controller:  controller,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the image regeneration routes
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/recipes")
	if h.rateLimiter != nil {
		images.Use(h.rateLimiter.RateLimitMiddleware())
	}
	images.POST("/:name/image", h.RegenerateImage)
}

// RegenerateImage requests a single generation attempt for the named recipe.
// On failure the recipe keeps its current (or placeholder) image and the
// error is surfaced to the caller.
func (h *ImageHandler) RegenerateImage(c *gin.Context) {
	name := c.Param("name")

	url, err := h.controller.RegenerateImage(c.Request.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, app.ErrRecipeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error":   "Image generation failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.RegenerateImageResponse{
		Name:     name,
		ImageURL: url,
		Status:   "success",
	})
}
