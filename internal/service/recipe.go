package service

import (
	"context"
	"log"
	"sync"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

// RecipeService produces fully populated recipe batches: generated text plus
// a generated image per recipe.
type RecipeService struct {
	text   ITextService
	images IImageService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(text ITextService, images IImageService) *RecipeService {
	return &RecipeService{
		text:   text,
		images: images,
	}
}

// FetchRecipes generates recipes for query in the requested language and fans
// out one image generation request per recipe. Image requests run
// concurrently and are joined positionally; a recipe whose image generation
// fails keeps an empty image reference instead of failing the batch. A
// failure of the text generation step aborts the whole operation.
func (s *RecipeService) FetchRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error) {
	recipes, err := s.text.GenerateRecipes(ctx, query, lang)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return recipes, nil
	}

	urls := make([]string, len(recipes))
	var wg sync.WaitGroup
	for i := range recipes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url, err := s.images.GenerateRecipeImage(ctx, &recipes[i])
			if err != nil {
				// Degrade to an empty reference; the card falls back
				// to a placeholder.
				log.Printf("[RecipeService] Image generation for '%s' gave up: %v", recipes[i].Name, err)
				return
			}
			urls[i] = url
		}(i)
	}
	wg.Wait()

	for i := range recipes {
		recipes[i].ImageURL = urls[i]
	}
	return recipes, nil
}

// RegenerateImage requests a single image generation attempt for an existing
// recipe and returns the new reference. The recipe itself is not modified.
func (s *RecipeService) RegenerateImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	return s.images.RegenerateRecipeImage(ctx, recipe)
}
