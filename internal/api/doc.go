// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package api exposes the SocialPulse HTTP surface: event ingestion
// endpoints that feed the pipeline, and read endpoints that serve the
// realtime snapshot and the persisted-event analyses.
//
// Deliberately thin: request validation, rate limiting, and JSON
// plumbing live here, all analytics semantics live in the pipeline and
// analytics packages.
package api
