package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ewilliams-labs/cadence/backend/internal/adapters/mongo"
	"github.com/ewilliams-labs/cadence/backend/internal/adapters/spotify"
	"github.com/ewilliams-labs/cadence/backend/internal/adapters/sqlite"
	"github.com/ewilliams-labs/cadence/backend/internal/config"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
	"github.com/ewilliams-labs/cadence/backend/internal/logger"
)

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg       config.Config
	logger    *log.Logger
	repo      ports.WorkoutRepository
	generator *services.Generator
	close     func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(logger.Config{Debug: cfg.Debug, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	keywords, err := config.LoadGenreKeywords(cfg.GenreKeywordsPath)
	if err != nil {
		return nil, err
	}

	var repo ports.WorkoutRepository
	var closeRepo func()
	switch cfg.StorageDriver {
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = dbAdapter
		closeRepo = func() { _ = dbAdapter.Close() }
	case "mongo":
		mongoAdapter, err := mongo.NewAdapter(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = mongoAdapter
		closeRepo = func() { _ = mongoAdapter.Close(context.Background()) }
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
	l.Debug("storage ready", "driver", cfg.StorageDriver)

	catalogs := spotify.NewCatalogFactory(spotify.FactoryConfig{
		BaseURL:       cfg.SpotifyAPIURL,
		Timeout:       cfg.CatalogTimeout,
		MaxRetries:    cfg.MaxRetries,
		Backoff:       cfg.RetryBackoff,
		RatePerSecond: cfg.RateLimitPerSecond,
		Logger:        l,
	})

	gen := services.NewGenerator(repo, catalogs, services.GeneratorConfig{
		Market:        cfg.Market,
		FallbackGenre: cfg.FallbackGenre,
		Concurrency:   cfg.Concurrency,
		Keywords:      keywords,
	}, l)

	return &app{
		cfg:       cfg,
		logger:    l,
		repo:      repo,
		generator: gen,
		close:     closeRepo,
	}, nil
}
