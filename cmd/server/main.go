// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/photometa/internal/api"
	"github.com/tomtom215/photometa/internal/config"
	"github.com/tomtom215/photometa/internal/database"
	"github.com/tomtom215/photometa/internal/filestore"
	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/logging"
	"github.com/tomtom215/photometa/internal/metrics"
	"github.com/tomtom215/photometa/internal/supervisor"
	"github.com/tomtom215/photometa/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("json_dir", cfg.Storage.JSONDir).
		Str("json_file", cfg.Storage.JSONFile).
		Str("default_backend", string(cfg.DefaultBackend())).
		Bool("intra_batch_dedup", cfg.Ingest.IntraBatchDedup).
		Msg("Starting Photometa")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	files, err := filestore.New(cfg.Storage.JSONDir, cfg.Storage.JSONFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JSON store")
	}

	coord, err := ingest.NewCoordinator(ingest.Options{IntraBatchDedup: cfg.Ingest.IntraBatchDedup}, db, files)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize ingestion coordinator")
	}

	handler, err := api.NewHandler(coord, db, files, api.HandlerConfig{
		DefaultBackend: cfg.DefaultBackend(),
		JSONDir:        cfg.Storage.JSONDir,
		MaxUploadBytes: cfg.Ingest.MaxUploadBytes,
		SearchLimit:    cfg.Ingest.SearchLimit,
		Version:        version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, api.MiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddStorageService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
		logging.Info().Dur("interval", cfg.Database.CheckpointInterval).Msg("Checkpoint service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
