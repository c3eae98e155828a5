package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe fetch service
type MockRecipeService struct {
	mock.Mock
}

// FetchRecipes mocks the FetchRecipes method
func (m *MockRecipeService) FetchRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error) {
	args := m.Called(ctx, query, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// RegenerateImage mocks the RegenerateImage method
func (m *MockRecipeService) RegenerateImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}

// MockTextService is a mock implementation of the text generation service
type MockTextService struct {
	mock.Mock
}

// GenerateRecipes mocks the GenerateRecipes method
func (m *MockTextService) GenerateRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error) {
	args := m.Called(ctx, query, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// MockImageService is a mock implementation of the image generation service
type MockImageService struct {
	mock.Mock
}

// GenerateRecipeImage mocks the GenerateRecipeImage method
func (m *MockImageService) GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}

// RegenerateRecipeImage mocks the RegenerateRecipeImage method
func (m *MockImageService) RegenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	args := m.Called(ctx, recipe)
	return args.String(0), args.Error(1)
}

// MockFavoritesStore is an in-memory favorites store for tests
type MockFavoritesStore struct {
	mock.Mock
}

// Load mocks the Load method
func (m *MockFavoritesStore) Load(ctx context.Context) []string {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []string{}
	}
	return args.Get(0).([]string)
}

// Save mocks the Save method
func (m *MockFavoritesStore) Save(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}
