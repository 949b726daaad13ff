// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package pipeline implements the real-time ingestion path: a bounded
// in-memory event buffer, an in-memory metrics aggregator, and the
// pipeline that drains buffered events to the database on an interval.
//
// Producers call TrackUserEvent/TrackContentEvent, which enqueue into
// the buffer and update counters without touching the database. A
// single background loop drains the buffer in batches and persists them
// behind a circuit breaker, so a slow or failing store never blocks
// ingestion.
package pipeline
