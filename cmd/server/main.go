// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package main is the SocialPulse server entry point.
//
// Startup order:
//
//  1. Configuration: koanf layered defaults, config file, SOCIALPULSE_* env
//  2. Logging: global zerolog logger per config
//  3. Database: embedded DuckDB with schema initialization
//  4. Pipeline: buffered ingestion with the background drain loop
//  5. Supervisor tree: pipeline under the ingest layer, HTTP server
//     under the api layer
//
// The process shuts down gracefully on SIGINT and SIGTERM: the
// supervisor stops the HTTP server, then the pipeline drains its
// remaining buffered events before exit.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mbellan/socialpulse/docs" // Import generated swagger docs
	"github.com/mbellan/socialpulse/internal/api"
	"github.com/mbellan/socialpulse/internal/config"
	"github.com/mbellan/socialpulse/internal/database"
	"github.com/mbellan/socialpulse/internal/logging"
	"github.com/mbellan/socialpulse/internal/pipeline"
	"github.com/mbellan/socialpulse/internal/supervisor"
	"github.com/mbellan/socialpulse/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not available yet; the default logger will do.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Int("buffer_size", cfg.Pipeline.BufferSize).
		Msg("Starting SocialPulse")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	p := pipeline.New(cfg, db)
	server := api.NewServer(&cfg.Server, p, db)

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddIngestService(p)
	tree.AddAPIService(services.NewHTTPService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	// Wait for the supervisor to fully stop.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("SocialPulse stopped")
}
