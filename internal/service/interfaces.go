package service

import (
	"context"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

// ITextService defines the recipe text generation boundary.
type ITextService interface {
	GenerateRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error)
}

// IImageService defines the image generation boundary.
type IImageService interface {
	GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error)
	RegenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error)
}

// IRecipeService is the combined fetch boundary the app controller depends on.
type IRecipeService interface {
	FetchRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error)
	RegenerateImage(ctx context.Context, recipe *types.Recipe) (string, error)
}
