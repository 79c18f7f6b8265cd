package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/auth"
	"github.com/ssaandco/aicatalog/internal/config"
	"github.com/ssaandco/aicatalog/internal/router"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	auth.InitJWTSecret(cfg.JWTSecret)

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	if cfg.SeedDemoData {
		if err := db.SeedDemoData(cfg.SeedDomain()); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	r := router.NewRouter(cfg, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
