// Command generate fetches one recipe batch and prints it as JSON, useful
// for smoke-testing provider credentials without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/locale"
	"github.com/forkcast/backend/internal/service"
)

func main() {
	query := flag.String("query", "", "search term (empty for the default set)")
	lang := flag.String("lang", string(locale.DefaultLanguage), "language tag (en, de, es)")
	withImages := flag.Bool("images", false, "also generate images for the batch")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		log.Fatalf("failed to initialize LLM service: %v", err)
	}

	language := locale.Language(*lang)
	if !locale.Valid(language) {
		language = locale.Match(*lang)
	}

	ctx := context.Background()

	if *withImages {
		imageService, err := service.NewImageService(cfg, nil)
		if err != nil {
			log.Fatalf("failed to initialize image service: %v", err)
		}

		recipes, err := service.NewRecipeService(llmService, imageService).FetchRecipes(ctx, *query, language)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		printJSON(recipes)
		return
	}

	recipes, err := llmService.GenerateRecipes(ctx, *query, language)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	printJSON(recipes)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}
}
