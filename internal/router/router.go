package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/api"
	"github.com/forkcast/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	imageHandler *api.ImageHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		recipeHandler.RegisterRoutes(v1)
		imageHandler.RegisterRoutes(v1)
	}

	return router
}
