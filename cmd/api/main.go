package main

import (
	"fmt"
	"os"

	"brewbooks/internal/config"
	"brewbooks/internal/database"
	"brewbooks/internal/logger"
	"brewbooks/internal/router"
	"brewbooks/internal/storage"
	"brewbooks/internal/validator"
)

// @title           Brewbooks API
// @version         1.0
// @description     Bookkeeping for coffee businesses: accounts, categories, transactions, transfers, statistics and reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	store, err := storage.NewLocalStore(appConfig.AttachmentDir)
	if err != nil {
		return fmt.Errorf("failed to open attachment storage: %w", err)
	}

	validator.Register()

	svc := router.NewServices(dbManager.DB(), store, appConfig.AttachmentMaxBytes)
	engine := router.New(svc)

	log.Infof("Starting brewbooks server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
