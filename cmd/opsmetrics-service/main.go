package main

import (
	"fmt"
	"os"

	"opsmetrics-service/internal/auth"
	"opsmetrics-service/internal/config"
	"opsmetrics-service/internal/db"
	"opsmetrics-service/internal/engine"
	httphandler "opsmetrics-service/internal/http"
	"opsmetrics-service/internal/http/middleware"
	"opsmetrics-service/internal/logger"
	"opsmetrics-service/internal/repository"
	"opsmetrics-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	recordRepo := repository.NewRecordRepository(database)
	metricsEngine := engine.New(cfg.Metrics.SLATargetHours)
	metricsService := service.NewMetricsService(recordRepo, metricsEngine)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(metricsService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting operations metrics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
