// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"zero buffer size", func(c *Config) { c.Pipeline.BufferSize = 0 }},
		{"negative batch size", func(c *Config) { c.Pipeline.BatchSize = -1 }},
		{"batch larger than buffer", func(c *Config) {
			c.Pipeline.BufferSize = 10
			c.Pipeline.BatchSize = 11
		}},
		{"zero flush interval", func(c *Config) { c.Pipeline.FlushInterval = 0 }},
		{"zero error backoff", func(c *Config) { c.Pipeline.ErrorBackoff = 0 }},
		{"negative histogram limit", func(c *Config) { c.Pipeline.HistogramLimit = -1 }},
		{"zero lookback", func(c *Config) { c.Analytics.DefaultLookbackHours = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLoadAppliesFileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
database:
  path: ` + filepath.Join(dir, "test.duckdb") + `
pipeline:
  batch_size: 250
  buffer_size: 5000
server:
  port: 9090
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SOCIALPULSE_SERVER_PORT", "9191")
	t.Setenv("SOCIALPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Pipeline.BatchSize != 250 {
		t.Errorf("expected file override batch_size=250, got %d", cfg.Pipeline.BatchSize)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("expected env override port=9191, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override level=debug, got %q", cfg.Logging.Level)
	}
	// Untouched defaults survive layering.
	if cfg.Pipeline.FlushInterval != time.Second {
		t.Errorf("expected default flush_interval=1s, got %v", cfg.Pipeline.FlushInterval)
	}
}

func TestAddr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 8085}
	if got := sc.Addr(); got != "127.0.0.1:8085" {
		t.Errorf("Addr() = %q", got)
	}
}
