// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/psalter/internal/api"
	"github.com/tomtom215/psalter/internal/backup"
	"github.com/tomtom215/psalter/internal/config"
	"github.com/tomtom215/psalter/internal/database"
	"github.com/tomtom215/psalter/internal/locale"
	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/middleware"
	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend"
	"github.com/tomtom215/psalter/internal/supervisor"
	"github.com/tomtom215/psalter/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Psalter with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedPath != "" {
		if err := seedLibrary(db, cfg.Database.SeedPath, cfg.Database.SeedChurchID); err != nil {
			logging.Err(err).Str("path", cfg.Database.SeedPath).Msg("Failed to seed library")
		}
	}

	// Reads go through the breaker when enabled; writes always hit the DB.
	var store database.Store = db
	var breaker api.BreakerStater
	if cfg.Breaker.Enabled {
		cb := database.NewCircuitBreakerStore(db, cfg.Breaker)
		store, breaker = cb, cb
		logging.Info().
			Uint32("min_requests", cfg.Breaker.MinRequests).
			Float64("failure_ratio", cfg.Breaker.FailureRatio).
			Dur("timeout", cfg.Breaker.Timeout).
			Msg("Circuit breaker enabled for database reads")
	}

	ratingCache, cacheCloser, err := openRatingCache(cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open rating cache")
	}
	defer func() {
		if err := cacheCloser.Close(); err != nil {
			logging.Err(err).Msg("Error closing rating cache")
		}
	}()

	logger := logging.Logger()
	ratings := recommend.NewRatingService(db, ratingCache, batchConfig(cfg), logger)

	tz, hemisphere := churchDefaults(cfg.Church)
	resolver := locale.NewResolver(store, logger, locale.WithDefaults(tz, hemisphere))

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create suggestion engine")
	}
	engine.SetDataProvider(store)
	engine.SetPreferenceLookup(ratings)
	engine.SetContextResolver(resolver)

	perf := middleware.NewPerformanceMonitor(1000)
	opts := []api.HandlerOption{
		api.WithPinger(db),
		api.WithRetirer(db),
		api.WithPerformanceMonitor(perf),
		api.WithVersion(version),
	}
	if breaker != nil {
		opts = append(opts, api.WithBreaker(breaker))
	}
	handler := api.NewHandler(engine, ratings, opts...)
	router := api.NewRouter(handler, buildMiddlewareConfig(cfg), perf)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCheckpointService(db, services.DefaultCheckpointInterval))
	tree.AddDataService(services.NewCacheMetricsService(ratingCache, "rating", services.DefaultCacheMetricsInterval))
	if cfg.Backup.Enabled {
		manager, err := backup.NewManager(backupConfig(cfg.Backup), db)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize backup manager")
		}
		tree.AddDataService(services.NewBackupService(manager, cfg.Backup.Interval, cfg.Backup.OnShutdown))
		logging.Info().
			Str("dir", cfg.Backup.Dir).
			Dur("interval", cfg.Backup.Interval).
			Int("snapshots", len(manager.List())).
			Msg("Library backups enabled")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server registered with supervisor")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor tree error")
		}
	}
	stop()

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// seedLibrary imports a library export into the database.
func seedLibrary(db *database.DB, path, defaultChurchID string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lib, err := models.DecodeLibrary(f)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stats, err := db.ImportLibrary(ctx, lib, defaultChurchID)
	if err != nil {
		return err
	}
	logging.Info().
		Int("churches", stats.Churches).
		Int("songs", stats.Songs).
		Int("usage", stats.Usage).
		Int("members", stats.Members).
		Int("preferences", stats.Preferences).
		Msg("Library seeded")
	return nil
}
