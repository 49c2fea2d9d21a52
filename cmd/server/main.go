package main

import (
	"fmt"
	"log"

	"acc-panel/internal/api/routes"
	"acc-panel/internal/config"
	"acc-panel/internal/models"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Server.Mode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	if err := models.InitDB(cfg); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// The seed admin must exist at all times; create it on first boot.
	authService := services.NewAuthService(cfg)
	if err := authService.EnsureSeedAdmin(); err != nil {
		logger.Fatal("Failed to create seed admin user", zap.Error(err))
	}

	// Clean up stale sessions from previous runs
	if err := authService.DeleteExpiredSessions(); err != nil {
		logger.Warn("Failed to delete expired sessions", zap.Error(err))
	}

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// Setup routes
	routes.SetupRoutes(r, cfg, logger)

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting acc-panel server",
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Type))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
