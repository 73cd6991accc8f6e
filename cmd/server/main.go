package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcalhoun/summit-backend/config"
	"github.com/rcalhoun/summit-backend/internal/app/cache"
	"github.com/rcalhoun/summit-backend/internal/app/controller"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/internal/app/service"
	"github.com/rcalhoun/summit-backend/internal/db"
	"github.com/rcalhoun/summit-backend/internal/middleware"
	"github.com/rcalhoun/summit-backend/internal/router"
	"github.com/rcalhoun/summit-backend/internal/scheduler"
	"github.com/rcalhoun/summit-backend/internal/storage"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"github.com/rcalhoun/summit-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Summit Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (authoritative cart storage)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	catalogRepo := repository.NewCatalogRepository(db.GetDB())

	// Initialize cart store
	cartStore := cache.NewRedisCartStore(redis.GetClient(), cfg.ShoppingCart.CartTTL)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	cartService := service.NewCartService(cartStore, catalogRepo, cfg.ShoppingCart)
	catalogService := service.NewCatalogService(catalogRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	cartController := controller.NewCartController(cartService)
	catalogController := controller.NewCatalogController(catalogService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the visitor cart sweeper
	sweeper := scheduler.NewCartSweeper(redis.GetClient())
	if err := sweeper.Start(); err != nil {
		logger.Error("Failed to start cart sweeper", err)
	}
	defer sweeper.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		cartController,
		catalogController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
