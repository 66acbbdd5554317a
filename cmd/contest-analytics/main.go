package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"contest-analytics/internal/auth"
	"contest-analytics/internal/config"
	"contest-analytics/internal/db"
	httphandler "contest-analytics/internal/http"
	"contest-analytics/internal/http/middleware"
	"contest-analytics/internal/importer"
	"contest-analytics/internal/logger"
	"contest-analytics/internal/repository"
	"contest-analytics/internal/service"
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

	analyticsRepo := repository.NewAnalyticsRepository(database)
	contestRepo := repository.NewContestRepository(database)
	queryLogRepo := repository.NewQueryLogRepository(database)

	var reportSource service.SnapshotSource = analyticsRepo
	if cfg.Analytics.Source == config.SourceMongo {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		legacy, err := importer.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		cancel()
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect legacy store")
		}
		defer func() {
			_ = legacy.Close(context.Background())
		}()
		reportSource = importer.NewLegacySnapshots(legacy)
		appLogger.Info().Str("database", cfg.Mongo.Database).Msg("reports read from legacy store")
	}

	analyticsService := service.NewAnalyticsService(reportSource, queryLogRepo, cfg.Analytics.RecordQueries, cfg.Analytics.QueryLogLimit, appLogger)
	contestService := service.NewContestService(contestRepo, analyticsRepo, appLogger)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(analyticsService, contestService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting contest analytics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
