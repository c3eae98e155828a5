package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

// recipeData mirrors the JSON schema the provider is instructed to emit.
type recipeData struct {
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Servings              flexInt            `json:"servings"`
	CookingTime           string             `json:"cooking_time"`
	Rating                flexInt            `json:"rating"`
	Nutrition             types.Nutrition    `json:"nutrition"`
	Ingredients           []types.Ingredient `json:"ingredients"`
	Instructions          []string           `json:"instructions"`
	ApplianceInstructions []string           `json:"appliance_instructions"`
}

// flexInt tolerates providers returning numbers as strings ("4" vs 4).
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexInt(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid numeric value %q", str)
		}
		*f = flexInt(n)
		return nil
	}

	return fmt.Errorf("invalid numeric field")
}

// LLMService handles recipe text generation against a chat-completions API.
type LLMService struct {
	apiKey    string
	apiURL    string
	model     string
	batchSize int
	client    *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" && !config.IsTest() {
		return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey:    cfg.LLMAPIKey,
		apiURL:    cfg.LLMAPIURL,
		model:     cfg.LLMModel,
		batchSize: cfg.RecipeBatchSize,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
	TopP           float64           `json:"top_p"`
}

const systemPromptFormat = `You are a professional chef and nutritionist. Respond strictly in JSON, without surrounding formatting or markdown fences, matching this structure exactly:
{
    "recipes": [
        {
            "name": "Recipe name",
            "description": "Brief description of the recipe",
            "servings": 4,
            "cooking_time": "35 minutes",
            "rating": 4,
            "nutrition": {
                "calories": "520 kcal",
                "protein": "23 g",
                "carbs": "61 g",
                "fat": "18 g"
            },
            "ingredients": [
                {"name": "flour", "quantity": 200, "unit": "g"},
                {"name": "eggs", "quantity": 3, "unit": ""}
            ],
            "instructions": [
                "Step 1: Mix the dry ingredients",
                "Step 2: Bake at 180°C for 30 minutes"
            ],
            "appliance_instructions": [
                "Step 1: Add all ingredients to the multicooker bowl",
                "Step 2: Run the baking program for 30 minutes"
            ]
        }
    ]
}

Note: servings and rating must be numbers, rating between 1 and 5, and every
ingredient quantity must be a number. The nutrition values are short text
labels including their unit. Provide %d recipes. All user-facing text must be
written in %s.`

// GenerateRecipes asks the provider for a batch of recipes matching query, in
// the requested language. An empty query yields the language's default
// selection. An empty result set is returned as an empty slice, not an error.
func (s *LLMService) GenerateRecipes(ctx context.Context, query string, lang locale.Language) ([]types.Recipe, error) {
	strings := locale.Get(lang)
	if query == "" {
		query = strings.DefaultQuery
	}

	messages := []Message{
		{
			Role:    "system",
			Content: fmt.Sprintf(systemPromptFormat, s.batchSize, strings.PromptLanguage),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Generate recipes for: %s", query),
		},
	}

	reqBody := Request{
		Model:    s.model,
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.9,
		TopP:        0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return parseRecipes(result.Choices[0].Message.Content)
}

// parseRecipes validates the provider content against the declared schema. A
// top-level shape without a recipes array is a format error; an empty array
// is a valid empty result.
func parseRecipes(content string) ([]types.Recipe, error) {
	var wrapper struct {
		Recipes *[]recipeData `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	if wrapper.Recipes == nil {
		return nil, fmt.Errorf("failed to parse recipes: response contains no recipe array")
	}

	recipes := make([]types.Recipe, 0, len(*wrapper.Recipes))
	for _, data := range *wrapper.Recipes {
		recipes = append(recipes, types.Recipe{
			ID:                    uuid.New(),
			Name:                  data.Name,
			Description:           data.Description,
			Servings:              int(data.Servings),
			CookingTime:           data.CookingTime,
			Rating:                int(data.Rating),
			Nutrition:             data.Nutrition,
			Ingredients:           data.Ingredients,
			Instructions:          data.Instructions,
			ApplianceInstructions: data.ApplianceInstructions,
		})
	}
	return recipes, nil
}
