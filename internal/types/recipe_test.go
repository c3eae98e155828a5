package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaledIngredients(t *testing.T) {
	recipe := &Recipe{
		Name:     "Tomato Soup",
		Servings: 4,
		Ingredients: []Ingredient{
			{Name: "tomatoes", Quantity: 800, Unit: "g"},
			{Name: "onion", Quantity: 1, Unit: ""},
			{Name: "cream", Quantity: 100, Unit: "ml"},
		},
	}

	t.Run("scales linearly with portions", func(t *testing.T) {
		scaled := ScaledIngredients(recipe, 6)

		assert.Equal(t, 1200.0, scaled[0].Quantity)
		assert.Equal(t, 1.5, scaled[1].Quantity)
		assert.Equal(t, 150.0, scaled[2].Quantity)
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		r := &Recipe{
			Servings:    3,
			Ingredients: []Ingredient{{Name: "flour", Quantity: 100, Unit: "g"}},
		}

		scaled := ScaledIngredients(r, 1)

		assert.Equal(t, 33.33, scaled[0].Quantity)
	})

	t.Run("same portions returns source quantities", func(t *testing.T) {
		scaled := ScaledIngredients(recipe, 4)

		assert.Equal(t, recipe.Ingredients, scaled)
	})

	t.Run("rounds raw quantities even at factor one", func(t *testing.T) {
		r := &Recipe{
			Servings:    4,
			Ingredients: []Ingredient{{Name: "saffron", Quantity: 0.333, Unit: "g"}},
		}

		scaled := ScaledIngredients(r, 4)

		assert.Equal(t, 0.33, scaled[0].Quantity)
	})

	t.Run("does not mutate the source recipe", func(t *testing.T) {
		_ = ScaledIngredients(recipe, 8)

		assert.Equal(t, 800.0, recipe.Ingredients[0].Quantity)
	})

	t.Run("invalid portion or serving counts are a no-op", func(t *testing.T) {
		assert.Equal(t, recipe.Ingredients, ScaledIngredients(recipe, 0))
		assert.Equal(t, recipe.Ingredients, ScaledIngredients(recipe, -2))

		zero := &Recipe{Servings: 0, Ingredients: recipe.Ingredients}
		assert.Equal(t, recipe.Ingredients, ScaledIngredients(zero, 4))
	})
}
