package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/api"
	"github.com/forkcast/backend/internal/app"
	"github.com/forkcast/backend/internal/database"
	"github.com/forkcast/backend/internal/logger"
	"github.com/forkcast/backend/internal/middleware"
	"github.com/forkcast/backend/internal/router"
	"github.com/forkcast/backend/internal/server"
	"github.com/forkcast/backend/internal/service"
	"github.com/forkcast/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.Init()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to open favorites database", zap.Error(err))
	}

	favorites, err := store.NewFavoritesStore(db)
	if err != nil {
		log.Fatal("failed to initialize favorites store", zap.Error(err))
	}

	// Rate limiting is best effort; without Redis the app still serves.
	var rateLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Warn("redis unavailable, generation rate limiting disabled", zap.Error(err))
	} else {
		rateLimiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Warn("S3 unavailable, provider image URLs served directly", zap.Error(err))
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		log.Fatal("failed to initialize LLM service", zap.Error(err))
	}
	imageService, err := service.NewImageService(cfg, s3Config)
	if err != nil {
		log.Fatal("failed to initialize image service", zap.Error(err))
	}
	recipeService := service.NewRecipeService(llmService, imageService)

	controller := app.NewController(recipeService, favorites, log)

	// Initial default fetch; the server comes up while it loads.
	go func() {
		if err := controller.Start(context.Background()); err != nil {
			log.Warn("initial recipe fetch failed", zap.Error(err))
		}
	}()

	recipeHandler := api.NewRecipeHandler(controller, rateLimiter)
	imageHandler := api.NewImageHandler(controller, rateLimiter)

	srv := server.New(cfg, router.SetupRouter(recipeHandler, imageHandler), log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
