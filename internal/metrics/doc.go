// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package metrics exposes Prometheus collectors for pipeline health.
// Collectors are registered via promauto at package load and served by
// the HTTP layer at /metrics.
package metrics
