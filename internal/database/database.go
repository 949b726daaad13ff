// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package database provides the embedded DuckDB store backing the analytics
// pipeline: three append-only tables (user_events, content_events,
// analytics_metrics) with timestamp indexes for lookback queries.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/mbellan/socialpulse/internal/config"
	"github.com/mbellan/socialpulse/internal/logging"
)

// DB wraps the DuckDB connection and provides event storage access.
// Only the drain worker writes; the transactional batch inserts rely on
// DuckDB's single-writer guarantees.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens (or creates) the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load of extensions to prevent hangs in
	// restricted network environments; nothing here needs them.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.initSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Msg("Database opened")

	return db, nil
}

// Conn exposes the underlying connection for health checks.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// initSchema creates tables, sequences, and indexes if absent. Idempotent,
// safe to run on every startup.
func (db *DB) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_user_events START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_content_events START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_analytics_metrics START 1`,

		`CREATE TABLE IF NOT EXISTS user_events (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_user_events'),
			user_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT,
			metadata TEXT,
			device_info TEXT,
			geo_info TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS content_events (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_content_events'),
			content_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			duration DOUBLE,
			metadata TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS analytics_metrics (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_analytics_metrics'),
			metric_name TEXT NOT NULL,
			metric_value DOUBLE NOT NULL,
			dimensions TEXT,
			timestamp TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_user_events_user_id ON user_events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_events_timestamp ON user_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_content_events_content_id ON content_events(content_id)`,
		`CREATE INDEX IF NOT EXISTS idx_content_events_timestamp ON content_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_metrics_name ON analytics_metrics(metric_name)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_metrics_timestamp ON analytics_metrics(timestamp)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}
