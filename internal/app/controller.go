// Package app owns all mutable session state: the active recipe list,
// selection, loading and error flags, favorites, filter and language. Every
// user intent is a transition on this state; nothing outside the controller
// keeps cross-cutting state.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/service"
	"github.com/forkcast/backend/internal/types"
)

// Filter selects which recipes are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
)

// PlaceholderImage is the fixed fallback reference shown when no valid
// generated image exists.
const PlaceholderImage = "/assets/placeholder-recipe.png"

// ErrRecipeNotFound reports that no recipe with the requested name exists in
// the current session. Callers branch on it with errors.Is.
var ErrRecipeNotFound = errors.New("recipe not found")

// FavoritesStore is the persistence boundary for the favorites sequence.
type FavoritesStore interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, names []string) error
}

// State is the controller's full session state.
type State struct {
	Language  locale.Language
	Recipes   []types.Recipe
	Selected  *types.Recipe
	Loading   bool
	Err       string
	Filter    Filter
	Favorites []string
}

// Controller orchestrates fetches in response to user intents and applies the
// resulting transitions.
type Controller struct {
	mu       sync.Mutex
	state    State
	fetchGen uint64

	recipes   service.IRecipeService
	favorites FavoritesStore
	log       *zap.Logger
}

// NewController creates the controller and loads the persisted favorites
// once. Missing or corrupt favorites data silently yields an empty set.
func NewController(recipes service.IRecipeService, favorites FavoritesStore, log *zap.Logger) *Controller {
	c := &Controller{
		recipes:   recipes,
		favorites: favorites,
		log:       log,
		state: State{
			Language:  locale.DefaultLanguage,
			Filter:    FilterAll,
			Favorites: []string{},
		},
	}
	if favorites != nil {
		c.state.Favorites = favorites.Load(context.Background())
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Recipes = append([]types.Recipe(nil), c.state.Recipes...)
	s.Favorites = append([]string(nil), c.state.Favorites...)
	if c.state.Selected != nil {
		sel := *c.state.Selected
		s.Selected = &sel
	}
	return s
}

// Start triggers the initial default fetch (no search term).
func (c *Controller) Start(ctx context.Context) error {
	return c.fetch(ctx, "")
}

// Search submits a new term: the filter resets to all, the selection clears,
// and a fetch for the term begins.
func (c *Controller) Search(ctx context.Context, term string) error {
	c.mu.Lock()
	c.state.Filter = FilterAll
	c.state.Selected = nil
	c.mu.Unlock()

	return c.fetch(ctx, term)
}

// SetLanguage switches the UI language and re-fetches the default set in it.
// The previous list is replaced; the selection is left alone.
func (c *Controller) SetLanguage(ctx context.Context, lang locale.Language) error {
	if !locale.Valid(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}

	c.mu.Lock()
	c.state.Language = lang
	c.mu.Unlock()

	return c.fetch(ctx, "")
}

// fetch runs one load cycle. Each fetch is stamped with a generation; a
// result whose generation is no longer current is discarded, so an abandoned
// search cannot clobber the state of a newer one.
func (c *Controller) fetch(ctx context.Context, term string) error {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.state.Loading = true
	c.state.Err = ""
	lang := c.state.Language
	c.mu.Unlock()

	recipes, err := c.recipes.FetchRecipes(ctx, term, lang)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.fetchGen {
		c.log.Debug("discarding stale fetch result", zap.Uint64("generation", gen))
		return nil
	}

	c.state.Loading = false
	if err != nil {
		c.log.Error("recipe fetch failed", zap.String("term", term), zap.Error(err))
		c.state.Recipes = nil
		c.state.Err = locale.Get(lang).LoadError
		return err
	}

	c.state.Recipes = recipes
	return nil
}

// Select enters the detail view for a recipe by name. No network call.
func (c *Controller) Select(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Recipes {
		if c.state.Recipes[i].Name == name {
			sel := c.state.Recipes[i]
			c.state.Selected = &sel
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrRecipeNotFound, name)
}

// ClearSelection leaves the detail view.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selected = nil
}

// SetFilter switches between showing all recipes and favorites only.
func (c *Controller) SetFilter(f Filter) error {
	if f != FilterAll && f != FilterFavorites {
		return fmt.Errorf("unsupported filter %q", f)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = f
	return nil
}

// Visible returns the recipes matching the active filter.
func (c *Controller) Visible() []types.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Filter != FilterFavorites {
		return append([]types.Recipe(nil), c.state.Recipes...)
	}

	visible := make([]types.Recipe, 0, len(c.state.Recipes))
	for _, r := range c.state.Recipes {
		if c.isFavoriteLocked(r.Name) {
			visible = append(visible, r)
		}
	}
	return visible
}

// ToggleFavorite adds or removes a recipe name from the favorites set and
// rewrites the persisted sequence. A persistence failure is logged, never
// surfaced; the in-memory set stays authoritative for the session.
func (c *Controller) ToggleFavorite(ctx context.Context, name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isFavoriteLocked(name) {
		kept := make([]string, 0, len(c.state.Favorites))
		for _, n := range c.state.Favorites {
			if n != name {
				kept = append(kept, n)
			}
		}
		c.state.Favorites = kept
	} else {
		c.state.Favorites = append(c.state.Favorites, name)
	}

	if c.favorites != nil {
		if err := c.favorites.Save(ctx, c.state.Favorites); err != nil {
			c.log.Error("failed to persist favorites", zap.Error(err))
		}
	}

	return append([]string(nil), c.state.Favorites...)
}

// IsFavorite reports whether the named recipe is favorited.
func (c *Controller) IsFavorite(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFavoriteLocked(name)
}

func (c *Controller) isFavoriteLocked(name string) bool {
	for _, n := range c.state.Favorites {
		if n == name {
			return true
		}
	}
	return false
}

// RegenerateImage requests a single image generation attempt for the named
// recipe and, on success, updates only that recipe's image reference in both
// the backing list and the selection. Controller-level loading state is not
// touched; the error is returned for the caller to surface while the existing
// image stays in place.
func (c *Controller) RegenerateImage(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	var target *types.Recipe
	for i := range c.state.Recipes {
		if c.state.Recipes[i].Name == name {
			r := c.state.Recipes[i]
			target = &r
			break
		}
	}
	if target == nil && c.state.Selected != nil && c.state.Selected.Name == name {
		r := *c.state.Selected
		target = &r
	}
	c.mu.Unlock()

	if target == nil {
		return "", fmt.Errorf("%w: %q", ErrRecipeNotFound, name)
	}

	url, err := c.recipes.RegenerateImage(ctx, target)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Recipes {
		if c.state.Recipes[i].Name == name {
			c.state.Recipes[i].ImageURL = url
		}
	}
	if c.state.Selected != nil && c.state.Selected.Name == name {
		c.state.Selected.ImageURL = url
	}
	return url, nil
}

// Recipe returns a copy of the named recipe from the current list.
func (c *Controller) Recipe(name string) (types.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Recipes {
		if c.state.Recipes[i].Name == name {
			return c.state.Recipes[i], nil
		}
	}
	return types.Recipe{}, fmt.Errorf("%w: %q", ErrRecipeNotFound, name)
}
