package app

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/types"
)

// ShareText builds the plain-text summary used by the share action: header,
// description, metadata line and the ingredient list, all in the active
// language. Share failures are a logging concern, never a user-visible error.
func (c *Controller) ShareText(name string) (string, error) {
	recipe, err := c.Recipe(name)
	if err != nil {
		c.log.Warn("share requested for unknown recipe", zap.String("name", name))
		return "", err
	}

	c.mu.Lock()
	strs := locale.Get(c.state.Language)
	c.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", strs.ShareHeader, recipe.Name)
	if recipe.Description != "" {
		b.WriteString(recipe.Description + "\n")
	}
	fmt.Fprintf(&b, "%s: %d · %s · %s\n", strs.ServingsLabel, recipe.Servings, recipe.CookingTime, stars(recipe.Rating))

	b.WriteString("\n" + strs.IngredientsTitle + ":\n")
	for _, ing := range recipe.Ingredients {
		b.WriteString("- " + formatIngredient(ing) + "\n")
	}

	b.WriteString("\n" + strs.ShareFooter + "\n")
	return b.String(), nil
}

func formatIngredient(ing types.Ingredient) string {
	qty := strconv.FormatFloat(ing.Quantity, 'f', -1, 64)
	if ing.Unit != "" {
		return qty + " " + ing.Unit + " " + ing.Name
	}
	return qty + " " + ing.Name
}

func stars(rating int) string {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
