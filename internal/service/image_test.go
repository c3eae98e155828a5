package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/types"
)

func newTestImageService(t *testing.T, handler http.HandlerFunc) *ImageService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewImageService(&config.Config{
		ImageAPIKey: "test-api-key",
		ImageAPIURL: srv.URL,
	}, nil)
	require.NoError(t, err)
	return svc
}

func imageResponse(url string) string {
	return fmt.Sprintf(`{"created": 1700000000, "data": [{"url": %q}]}`, url)
}

func TestGenerateImageFromPrompt(t *testing.T) {
	var calls int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(imageResponse("https://img.example/soup.png")))
	})

	url, err := svc.GenerateImageFromPrompt(context.Background(), "a soup", "1024x1024")

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/soup.png", url)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateImageFromPromptRetriesThenSucceeds(t *testing.T) {
	var calls int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(imageResponse("https://img.example/stew.png")))
	})

	url, err := svc.GenerateImageFromPrompt(context.Background(), "a stew", "1024x1024")

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/stew.png", url)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGenerateImageFromPromptExhaustsRetries(t *testing.T) {
	var calls int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := svc.GenerateImageFromPrompt(context.Background(), "a salad", "1024x1024")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRegenerateRecipeImageSingleAttempt(t *testing.T) {
	var calls int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	recipe := &types.Recipe{Name: "Tomato Soup", Description: "A warming classic"}
	_, err := svc.RegenerateRecipeImage(context.Background(), recipe)

	require.Error(t, err)
	// no retry loop on regeneration
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateImageAttemptRejectsEmptyData(t *testing.T) {
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"created": 1700000000, "data": []}`))
	})

	_, err := svc.generateImageAttempt(context.Background(), "a cake", "1024x1024")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image data")
}

func TestBuildRecipeImagePrompt(t *testing.T) {
	prompt := buildRecipeImagePrompt(&types.Recipe{
		Name:        "Tomato Soup",
		Description: "A warming classic",
	})

	assert.Contains(t, prompt, "tomato soup")
	assert.Contains(t, prompt, "a warming classic")
	assert.LessOrEqual(t, len(prompt), 900)
}
