package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

type stubText struct {
	recipes []types.Recipe
	err     error
}

func (s *stubText) GenerateRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error) {
	return s.recipes, s.err
}

// stubImages resolves per-recipe outcomes by name.
type stubImages struct {
	urls map[string]string
	errs map[string]error
}

func (s *stubImages) GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	if err, ok := s.errs[recipe.Name]; ok {
		return "", err
	}
	return s.urls[recipe.Name], nil
}

func (s *stubImages) RegenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	return s.GenerateRecipeImage(ctx, recipe)
}

func TestFetchRecipesJoinsImagesPositionally(t *testing.T) {
	text := &stubText{recipes: []types.Recipe{
		{Name: "Tomato Soup"},
		{Name: "Beef Stew"},
		{Name: "Caesar Salad"},
	}}
	images := &stubImages{urls: map[string]string{
		"Tomato Soup":  "https://img.example/soup.png",
		"Beef Stew":    "https://img.example/stew.png",
		"Caesar Salad": "https://img.example/salad.png",
	}}

	recipes, err := NewRecipeService(text, images).FetchRecipes(context.Background(), "dinner", locale.English)

	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "https://img.example/soup.png", recipes[0].ImageURL)
	assert.Equal(t, "https://img.example/stew.png", recipes[1].ImageURL)
	assert.Equal(t, "https://img.example/salad.png", recipes[2].ImageURL)
}

func TestFetchRecipesImageFailureDegradesPerRecipe(t *testing.T) {
	text := &stubText{recipes: []types.Recipe{
		{Name: "Tomato Soup"},
		{Name: "Beef Stew"},
	}}
	images := &stubImages{
		urls: map[string]string{"Beef Stew": "https://img.example/stew.png"},
		errs: map[string]error{"Tomato Soup": fmt.Errorf("failed to generate image after 3 attempts")},
	}

	recipes, err := NewRecipeService(text, images).FetchRecipes(context.Background(), "dinner", locale.English)

	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Empty(t, recipes[0].ImageURL)
	assert.Equal(t, "https://img.example/stew.png", recipes[1].ImageURL)
}

func TestFetchRecipesTextFailureAbortsBatch(t *testing.T) {
	text := &stubText{err: fmt.Errorf("API request failed with status 500")}
	images := &stubImages{}

	recipes, err := NewRecipeService(text, images).FetchRecipes(context.Background(), "dinner", locale.English)

	require.Error(t, err)
	assert.Nil(t, recipes)
}

func TestFetchRecipesEmptyBatchSkipsFanOut(t *testing.T) {
	text := &stubText{recipes: []types.Recipe{}}
	images := &mockCountingImages{}

	recipes, err := NewRecipeService(text, images).FetchRecipes(context.Background(), "nothing", locale.English)

	require.NoError(t, err)
	assert.Empty(t, recipes)
	images.AssertNotCalled(t, "GenerateRecipeImage", mock.Anything, mock.Anything)
}

type mockCountingImages struct {
	mock.Mock
}

func (m *mockCountingImages) GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}

func (m *mockCountingImages) RegenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}
