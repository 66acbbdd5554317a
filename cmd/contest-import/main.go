package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contest-analytics/internal/config"
	"contest-analytics/internal/db"
	"contest-analytics/internal/importer"
	"contest-analytics/internal/logger"
	"contest-analytics/internal/repository"
)

func main() {
	cfg, err := config.LoadImporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	source, err := importer.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect legacy store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := source.Close(closeCtx); err != nil {
			appLogger.Warn().Err(err).Msg("failed to disconnect legacy store")
		}
	}()

	imp := importer.New(
		source,
		repository.NewContestRepository(database),
		repository.NewQueryLogRepository(database),
		appLogger,
	)
	if _, err := imp.Run(ctx); err != nil {
		appLogger.Error().Err(err).Msg("legacy import failed")
		os.Exit(1)
	}
}
