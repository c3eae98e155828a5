// Package locale holds the static translation table: localized UI strings and
// prompt templates keyed by language tag. Pure data, no behavior beyond tag
// matching.
package locale

import "golang.org/x/text/language"

// Language is one of the three supported UI languages.
type Language string

const (
	English Language = "en"
	German  Language = "de"
	Spanish Language = "es"
)

// DefaultLanguage is used when no preference has been expressed.
const DefaultLanguage = English

// Languages lists the supported options in display order.
var Languages = []Language{English, German, Spanish}

// Strings bundles the localized texts for one language.
type Strings struct {
	// PromptLanguage is the language name the provider is instructed to
	// answer in ("English", "Deutsch", ...).
	PromptLanguage string

	// DefaultQuery seeds the initial fetch when no search term was given.
	DefaultQuery string

	AppTitle          string
	NoRecipes         string
	LoadError         string
	StandardMode      string
	ApplianceMode     string
	IngredientsTitle  string
	InstructionsTitle string
	NutritionTitle    string
	ServingsLabel     string
	ShareHeader       string
	ShareFooter       string
}

var table = map[Language]Strings{
	English: {
		PromptLanguage:    "English",
		DefaultQuery:      "a varied selection of popular everyday dishes",
		AppTitle:          "Forkcast",
		NoRecipes:         "No recipes found. Try another search.",
		LoadError:         "Something went wrong while fetching recipes.",
		StandardMode:      "Standard",
		ApplianceMode:     "Multicooker",
		IngredientsTitle:  "Ingredients",
		InstructionsTitle: "Instructions",
		NutritionTitle:    "Nutrition per serving",
		ServingsLabel:     "Servings",
		ShareHeader:       "Check out this recipe",
		ShareFooter:       "Found with Forkcast",
	},
	German: {
		PromptLanguage:    "Deutsch",
		DefaultQuery:      "eine abwechslungsreiche Auswahl beliebter Alltagsgerichte",
		AppTitle:          "Forkcast",
		NoRecipes:         "Keine Rezepte gefunden. Versuche eine andere Suche.",
		LoadError:         "Beim Laden der Rezepte ist etwas schiefgelaufen.",
		StandardMode:      "Standard",
		ApplianceMode:     "Multikocher",
		IngredientsTitle:  "Zutaten",
		InstructionsTitle: "Zubereitung",
		NutritionTitle:    "Nährwerte pro Portion",
		ServingsLabel:     "Portionen",
		ShareHeader:       "Schau dir dieses Rezept an",
		ShareFooter:       "Gefunden mit Forkcast",
	},
	Spanish: {
		PromptLanguage:    "Español",
		DefaultQuery:      "una selección variada de platos populares de todos los días",
		AppTitle:          "Forkcast",
		NoRecipes:         "No se encontraron recetas. Prueba otra búsqueda.",
		LoadError:         "Algo salió mal al cargar las recetas.",
		StandardMode:      "Estándar",
		ApplianceMode:     "Robot de cocina",
		IngredientsTitle:  "Ingredientes",
		InstructionsTitle: "Preparación",
		NutritionTitle:    "Información nutricional por ración",
		ServingsLabel:     "Raciones",
		ShareHeader:       "Mira esta receta",
		ShareFooter:       "Encontrado con Forkcast",
	},
}

// Get returns the string table for lang, falling back to the default
// language for unknown tags.
func Get(lang Language) Strings {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[DefaultLanguage]
}

// Valid reports whether lang is one of the supported options.
func Valid(lang Language) bool {
	_, ok := table[lang]
	return ok
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.Spanish,
})

// Match resolves an arbitrary BCP 47 tag (e.g. from an Accept-Language
// header) to the closest supported language.
func Match(tag string) Language {
	_, index := language.MatchStrings(matcher, tag)
	switch index {
	case 1:
		return German
	case 2:
		return Spanish
	default:
		return English
	}
}
