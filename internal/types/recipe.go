package types

import (
	"math"

	"github.com/google/uuid"
)

// Nutrition holds the per-recipe nutrition summary. Values are free-text
// labels as returned by the provider ("520 kcal", "23 g"), not structured
// units.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Ingredient is a single entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe represents a generated recipe in the system.
//
// The generated name is the favorites and selection key; two recipes with the
// same name are the same entity for favoriting purposes. The ID is synthetic,
// assigned at parse time, and only disambiguates list entries.
type Recipe struct {
	ID                    uuid.UUID    `json:"id"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	Servings              int          `json:"servings"`
	CookingTime           string       `json:"cooking_time"`
	Rating                int          `json:"rating"`
	Nutrition             Nutrition    `json:"nutrition"`
	Ingredients           []Ingredient `json:"ingredients"`
	Instructions          []string     `json:"instructions"`
	ApplianceInstructions []string     `json:"appliance_instructions"`
	ImageURL              string       `json:"image_url"`
}

// ScaledIngredients returns the ingredient list adjusted from the recipe's
// serving count to the requested portions, each quantity rounded to two
// decimal places. The result is display state only and is never written back.
func ScaledIngredients(r *Recipe, portions int) []Ingredient {
	scaled := make([]Ingredient, len(r.Ingredients))
	copy(scaled, r.Ingredients)

	if portions <= 0 || r.Servings <= 0 {
		return scaled
	}

	// Rounding applies at factor 1 too, so a raw provider quantity like
	// 0.333 displays as 0.33 regardless of the requested portions.
	factor := float64(portions) / float64(r.Servings)
	for i := range scaled {
		scaled[i].Quantity = math.Round(scaled[i].Quantity*factor*100) / 100
	}
	return scaled
}
