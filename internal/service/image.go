package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/types"
)

// ImageGenerationRequest represents a request to the image generation API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the image generation API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ImageService handles image generation and storage operations
type ImageService struct {
	apiKey   string
	apiURL   string
	s3Config *config.S3Config
	client   *http.Client
}

// NewImageService creates a new ImageService instance. s3Config may be nil,
// in which case provider URLs are returned untouched.
func NewImageService(cfg *config.Config, s3Config *config.S3Config) (*ImageService, error) {
	if cfg.ImageAPIKey == "" && !config.IsTest() {
		return nil, fmt.Errorf("IMAGE_API_KEY or IMAGE_API_KEY_FILE must be set")
	}

	return &ImageService{
		apiKey:   cfg.ImageAPIKey,
		apiURL:   cfg.ImageAPIURL,
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateRecipeImage generates an image for a recipe, retrying up to the
// attempt bound before giving up.
func (s *ImageService) GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	prompt := buildRecipeImagePrompt(recipe)
	log.Printf("[ImageService] Generating image for recipe '%s'", recipe.Name)

	return s.GenerateImageFromPrompt(ctx, prompt, "1024x1024")
}

// RegenerateRecipeImage requests exactly one image generation attempt for an
// existing recipe. No retry loop; the caller surfaces the error and keeps the
// recipe's current image in place.
func (s *ImageService) RegenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error) {
	prompt := buildRecipeImagePrompt(recipe)
	log.Printf("[ImageService] Regenerating image for recipe '%s'", recipe.Name)

	imageURL, err := s.generateImageAttempt(ctx, prompt, "1024x1024")
	if err != nil {
		return "", fmt.Errorf("failed to regenerate image: %w", err)
	}
	return imageURL, nil
}

// GenerateImageFromPrompt generates an image from a text prompt
func (s *ImageService) GenerateImageFromPrompt(ctx context.Context, prompt string, size string) (string, error) {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		imageURL, err := s.generateImageAttempt(ctx, prompt, size)
		if err != nil {
			log.Printf("[ImageService] Attempt %d/%d failed: %v", attempt, maxRetries, err)
			if attempt == maxRetries {
				return "", fmt.Errorf("failed to generate image after %d attempts: %w", maxRetries, err)
			}
			// Wait before retry
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		return imageURL, nil
	}

	return "", fmt.Errorf("failed to generate image after %d attempts", maxRetries)
}

// generateImageAttempt performs a single image generation attempt
func (s *ImageService) generateImageAttempt(ctx context.Context, prompt string, size string) (string, error) {
	reqBody := ImageGenerationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           size,
		Quality:        "standard", // standard quality to control costs
		ResponseFormat: "url",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ImageService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return "", fmt.Errorf("no image data in API response")
	}

	imageURL := result.Data[0].URL
	if imageURL == "" {
		return "", fmt.Errorf("empty image URL in API response")
	}

	if s.s3Config == nil {
		return imageURL, nil
	}

	s3URL, err := s.downloadAndUploadToS3(ctx, imageURL)
	if err != nil {
		log.Printf("[ImageService] Failed to upload to S3, returning original URL: %v", err)
		return imageURL, nil
	}

	return s3URL, nil
}

// downloadAndUploadToS3 downloads an image from URL and uploads it to S3
func (s *ImageService) downloadAndUploadToS3(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	fileName := fmt.Sprintf("recipe-images/%s.png", uuid.New().String())

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}

// buildRecipeImagePrompt creates a food photography prompt from recipe data.
func buildRecipeImagePrompt(recipe *types.Recipe) string {
	description := strings.ToLower(recipe.Name)
	if recipe.Description != "" {
		description += ", " + strings.ToLower(recipe.Description)
	}

	prompt := "A professional food photography shot of " + description +
		", shot with natural lighting, shallow depth of field, garnished beautifully, restaurant quality presentation, appetizing colors"

	// Keep well under typical prompt limits
	if len(prompt) > 900 {
		prompt = prompt[:900]
	}

	return prompt
}
