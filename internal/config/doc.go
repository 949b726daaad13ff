// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package config loads and validates the SocialPulse configuration using
// koanf v2 with layered sources: struct defaults, an optional YAML file,
// and SOCIALPULSE_* environment variable overrides.
package config
