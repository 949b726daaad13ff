// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the SocialPulse server.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" opens an in-memory store.
	Path string `koanf:"path"`
	// MaxMemory caps DuckDB memory usage, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// PipelineConfig configures ingestion buffering and the drain worker.
type PipelineConfig struct {
	// BufferSize is the event buffer capacity. Once full, the oldest
	// entry is evicted silently on each new append.
	BufferSize int `koanf:"buffer_size"`
	// BatchSize is the maximum number of events drained and persisted
	// per cycle.
	BatchSize int `koanf:"batch_size"`
	// FlushInterval is the sleep between drain cycles.
	FlushInterval time.Duration `koanf:"flush_interval"`
	// ErrorBackoff is the sleep after a failed persistence attempt.
	ErrorBackoff time.Duration `koanf:"error_backoff"`
	// HistogramLimit bounds samples retained per histogram key.
	// 0 keeps every sample for the process lifetime.
	HistogramLimit int `koanf:"histogram_limit"`
	// MetricSnapshots persists aggregator counter/gauge snapshots to the
	// analytics_metrics table on each drain cycle.
	MetricSnapshots bool `koanf:"metric_snapshots"`
	// BreakerThreshold is the number of consecutive persistence failures
	// before the storage circuit breaker opens.
	BreakerThreshold uint32 `koanf:"breaker_threshold"`
	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// AnalyticsConfig configures the insight analyzers.
type AnalyticsConfig struct {
	// GroupBySessionOnly keys journeys on session_id alone instead of
	// (user_id, session_id). With the default grouping, events with no
	// session id collapse into one "default" bucket per user.
	GroupBySessionOnly bool `koanf:"group_by_session_only"`
	// DefaultLookbackHours is used when a query omits lookback_hours.
	DefaultLookbackHours int `koanf:"default_lookback_hours"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for values that would break the
// pipeline at runtime. Called by Load after all layers are merged.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Pipeline.BufferSize <= 0 {
		return fmt.Errorf("pipeline.buffer_size must be positive, got %d", c.Pipeline.BufferSize)
	}
	if c.Pipeline.BatchSize <= 0 {
		return fmt.Errorf("pipeline.batch_size must be positive, got %d", c.Pipeline.BatchSize)
	}
	if c.Pipeline.BatchSize > c.Pipeline.BufferSize {
		return fmt.Errorf("pipeline.batch_size (%d) must not exceed pipeline.buffer_size (%d)",
			c.Pipeline.BatchSize, c.Pipeline.BufferSize)
	}
	if c.Pipeline.FlushInterval <= 0 {
		return fmt.Errorf("pipeline.flush_interval must be positive")
	}
	if c.Pipeline.ErrorBackoff <= 0 {
		return fmt.Errorf("pipeline.error_backoff must be positive")
	}
	if c.Pipeline.HistogramLimit < 0 {
		return fmt.Errorf("pipeline.histogram_limit must not be negative, got %d", c.Pipeline.HistogramLimit)
	}
	if c.Analytics.DefaultLookbackHours <= 0 {
		return fmt.Errorf("analytics.default_lookback_hours must be positive, got %d", c.Analytics.DefaultLookbackHours)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	return nil
}
