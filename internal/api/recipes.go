package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/app"
	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/middleware"
	"github.com/forkcast/backend/internal/types"
)

// RecipeHandler dispatches recipe and session intents to the app controller.
type RecipeHandler struct {
	controller  *app.Controller
	rateLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(controller *app.Controller, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		controller:  controller,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the session and recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", h.GetState)
	router.GET("/languages", h.ListLanguages)
	router.PUT("/language", h.SetLanguage)
	router.PUT("/filter", h.SetFilter)
	router.DELETE("/selection", h.ClearSelection)

	search := router.Group("/search")
	if h.rateLimiter != nil {
		search.Use(h.rateLimiter.RateLimitMiddleware())
	}
	search.POST("", h.Search)

	recipes := router.Group("/recipes")
	{
		recipes.POST("/:name/select", h.SelectRecipe)
		recipes.POST("/:name/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:name/favorite", h.UnfavoriteRecipe)
		recipes.GET("/:name/share", h.ShareRecipe)
		recipes.GET("/:name/scale", h.ScaleRecipe)
	}
}

// GetState returns the current session snapshot, with the recipe list
// narrowed to the active filter.
func (h *RecipeHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.stateResponse())
}

// ListLanguages returns the fixed language options.
func (h *RecipeHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": locale.Languages})
}

// Search submits a new search term and blocks until the fetch settles.
func (h *RecipeHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A fetch error is already folded into the state as the single
	// user-visible message; the snapshot carries it.
	_ = h.controller.Search(c.Request.Context(), req.Query)

	c.JSON(http.StatusOK, h.stateResponse())
}

// SetLanguage switches the UI language and re-fetches the default set.
func (h *RecipeHandler) SetLanguage(c *gin.Context) {
	var req types.SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := locale.Language(req.Language)
	if !locale.Valid(lang) {
		lang = locale.Match(req.Language)
	}

	_ = h.controller.SetLanguage(c.Request.Context(), lang)

	c.JSON(http.StatusOK, h.stateResponse())
}

// SetFilter toggles between all recipes and favorites only.
func (h *RecipeHandler) SetFilter(c *gin.Context) {
	var req types.SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.controller.SetFilter(app.Filter(req.Filter)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.stateResponse())
}

// SelectRecipe enters the detail view for a recipe.
func (h *RecipeHandler) SelectRecipe(c *gin.Context) {
	if err := h.controller.Select(c.Param("name")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, h.stateResponse())
}

// ClearSelection leaves the detail view.
func (h *RecipeHandler) ClearSelection(c *gin.Context) {
	h.controller.ClearSelection()
	c.JSON(http.StatusOK, h.stateResponse())
}

// FavoriteRecipe adds a recipe name to the favorites set.
func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	name := c.Param("name")
	if !h.controller.IsFavorite(name) {
		h.controller.ToggleFavorite(c.Request.Context(), name)
	}
	c.JSON(http.StatusOK, gin.H{"favorites": h.controller.Snapshot().Favorites})
}

// UnfavoriteRecipe removes a recipe name from the favorites set.
func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	name := c.Param("name")
	if h.controller.IsFavorite(name) {
		h.controller.ToggleFavorite(c.Request.Context(), name)
	}
	c.JSON(http.StatusOK, gin.H{"favorites": h.controller.Snapshot().Favorites})
}

// ShareRecipe returns the formatted share text for a recipe.
func (h *RecipeHandler) ShareRecipe(c *gin.Context) {
	name := c.Param("name")
	text, err := h.controller.ShareText(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, types.ShareResponse{Name: name, Text: text})
}

// ScaleRecipe returns the ingredient list adjusted to the requested portions.
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	name := c.Param("name")
	recipe, err := h.controller.Recipe(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	portions, err := strconv.Atoi(c.Query("portions"))
	if err != nil || portions <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "portions must be a positive integer"})
		return
	}

	c.JSON(http.StatusOK, types.ScaleResponse{
		Name:        name,
		Servings:    recipe.Servings,
		Portions:    portions,
		Ingredients: types.ScaledIngredients(&recipe, portions),
	})
}

func (h *RecipeHandler) stateResponse() types.StateResponse {
	state := h.controller.Snapshot()
	return types.StateResponse{
		Language:  string(state.Language),
		Recipes:   h.controller.Visible(),
		Selected:  state.Selected,
		Loading:   state.Loading,
		Error:     state.Err,
		Filter:    string(state.Filter),
		Favorites: state.Favorites,
	}
}
