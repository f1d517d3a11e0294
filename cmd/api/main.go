// Copyright (c) 2026 Catalog. All rights reserved.

/*
Api is the entry point for the Catalog tag-search HTTP API server.

The server evaluates free-form boolean tag queries over a store of posted
articles, returning paginated, ordered id lists memoized behind a two-tier
result cache.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT      Port to listen on (default: 8080)
	ENVIRONMENT      deployment environment (development, production)
	DATABASE_URL     Postgres connection string (required)
	CACHE_BASE_DIR   Filesystem root for the search result cache
	LIMIT_TAGS       Maximum tag literals accepted per query
	MAX_SHOW_COUNT   Page size for search results

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish a connection to Postgres.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkline/catalog/internal/api"
	"github.com/inkline/catalog/internal/core/article"
	"github.com/inkline/catalog/internal/core/search"
	"github.com/inkline/catalog/internal/core/search/cache"
	"github.com/inkline/catalog/internal/platform/config"
	"github.com/inkline/catalog/internal/platform/constants"
	"github.com/inkline/catalog/internal/platform/migration"
	pgstore "github.com/inkline/catalog/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 5. Cache root
	if err := os.MkdirAll(cfg.CacheBaseDir, 0o777); err != nil {
		return fmt.Errorf("create cache base dir: %w", err)
	}

	// # 6. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCacheStorage: func() error {
			return checkCacheWritable(cfg.CacheBaseDir)
		},
	}, log)

	// # 7. Search Domain Wiring
	cacheManager := cache.NewManager(cfg.CacheBaseDir, pool)
	searchStore := search.NewPostgresStore(pool)
	facade := search.NewFacade(cacheManager, searchStore, cfg.MaxShowCount, cfg.LimitTags)
	searchHdl := search.NewHandler(facade, cfg.MaxShowCount)

	// # 8. Article Domain Wiring
	articleRepo := article.NewPostgresRepository(pool)
	articleSvc := article.NewService(articleRepo, facade, log)
	articleHdl := article.NewHandler(articleSvc)

	// # 9. API Assembly
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Search:    searchHdl,
		Article:   articleHdl,
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, handlers)

	// # 10. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("catalog_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}

// checkCacheWritable verifies the cache root is a writable directory by
// creating and removing a probe file, matching the readiness check's shape
// for the database ping.
func checkCacheWritable(baseDir string) error {
	probe, err := os.CreateTemp(baseDir, ".health-*")
	if err != nil {
		return fmt.Errorf("cache base dir not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
