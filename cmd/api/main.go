package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/server"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	sessions := session.NewRedisStore(redisClient)
	authService := service.NewAuthService(db, sessions, cfg.JWTSecret, cfg.SessionTTL)
	gateway := service.NewSpoonacularClient(cfg.SpoonacularAPIKey, cfg.SpoonacularAPIURL, logger)
	recipeService := service.NewRecipeService(db, gateway, logger)
	favoriteService := service.NewFavoriteService(db)

	var imageHandler *api.ImageHandler
	storage, err := service.NewImageStorage(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
	if err != nil {
		logger.Warn("image storage disabled", zap.Error(err))
	} else {
		imageHandler = api.NewImageHandler(storage, logger)
	}

	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",")

	engine := router.Setup(
		api.NewAuthHandler(authService, cfg.SessionTTL, logger),
		api.NewRecipeHandler(recipeService, favoriteService, logger),
		imageHandler,
		api.NewHealthHandler(db, redisClient),
		authService,
		corsOrigins,
	)

	srv := server.New(engine, cfg, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
