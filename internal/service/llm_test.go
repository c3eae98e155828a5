package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/locale"
)

func newTestLLMService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(&config.Config{
		LLMAPIKey:       "test-api-key",
		LLMAPIURL:       srv.URL,
		LLMModel:        "deepseek-chat",
		RecipeBatchSize: 2,
	})
	require.NoError(t, err)
	return svc
}

func chatCompletion(content string) string {
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

const recipesContent = `{
	"recipes": [
		{
			"name": "Tomato Soup",
			"description": "A warming classic",
			"servings": 4,
			"cooking_time": "35 minutes",
			"rating": 4,
			"nutrition": {"calories": "210 kcal", "protein": "5 g", "carbs": "24 g", "fat": "9 g"},
			"ingredients": [{"name": "tomatoes", "quantity": 800, "unit": "g"}],
			"instructions": ["Step 1: Simmer the tomatoes"],
			"appliance_instructions": ["Step 1: Add tomatoes to the multicooker bowl"]
		},
		{
			"name": "Beef Stew",
			"description": "Slow and hearty",
			"servings": "6",
			"cooking_time": "2 hours",
			"rating": "5",
			"nutrition": {"calories": "540 kcal", "protein": "38 g", "carbs": "22 g", "fat": "31 g"},
			"ingredients": [{"name": "beef", "quantity": 1.2, "unit": "kg"}],
			"instructions": ["Step 1: Brown the beef"],
			"appliance_instructions": ["Step 1: Use the stew program"]
		}
	]
}`

func TestGenerateRecipes(t *testing.T) {
	var gotReq Request
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(chatCompletion(recipesContent)))
	})

	recipes, err := svc.GenerateRecipes(context.Background(), "soup", locale.German)

	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, "Tomato Soup", recipes[0].Name)
	assert.Equal(t, 4, recipes[0].Servings)
	assert.Equal(t, 4, recipes[0].Rating)
	assert.Equal(t, "210 kcal", recipes[0].Nutrition.Calories)
	assert.Equal(t, 800.0, recipes[0].Ingredients[0].Quantity)
	assert.NotEqual(t, recipes[0].ID, recipes[1].ID)
	assert.Empty(t, recipes[0].ImageURL)

	// string-typed numbers from the provider are tolerated
	assert.Equal(t, 6, recipes[1].Servings)
	assert.Equal(t, 5, recipes[1].Rating)

	// the request carried the query and the requested language
	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[0].Content, "Deutsch")
	assert.Contains(t, gotReq.Messages[1].Content, "soup")
}

func TestGenerateRecipesDefaultQuery(t *testing.T) {
	var gotReq Request
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(chatCompletion(`{"recipes": []}`)))
	})

	recipes, err := svc.GenerateRecipes(context.Background(), "", locale.English)

	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Contains(t, gotReq.Messages[1].Content, locale.Get(locale.English).DefaultQuery)
}

func TestGenerateRecipesEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion(`{"recipes": []}`)))
	})

	recipes, err := svc.GenerateRecipes(context.Background(), "nothing", locale.English)

	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Len(t, recipes, 0)
}

func TestGenerateRecipesRejectsWrongShape(t *testing.T) {
	cases := map[string]string{
		"missing recipes key": `{"dishes": []}`,
		"not json":            `here are your recipes!`,
		"recipes not array":   `{"recipes": "Tomato Soup"}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatCompletion(content)))
			})

			_, err := svc.GenerateRecipes(context.Background(), "soup", locale.English)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse recipes")
		})
	}
}

func TestGenerateRecipesAPIError(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := svc.GenerateRecipes(context.Background(), "soup", locale.English)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGenerateRecipesNoChoices(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.GenerateRecipes(context.Background(), "soup", locale.English)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from API")
}
