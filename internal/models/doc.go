// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

// Package models defines the event and insight types shared across the
// pipeline, storage, and API layers.
//
// Events (UserEvent, ContentEvent, MetricSample) are immutable once created:
// they are constructed by the pipeline with a server-assigned timestamp,
// buffered, persisted once, and never mutated or deleted.
//
// Insight types (BehaviorReport, ContentReport, and friends) are derived on
// demand from persisted events and are never stored.
package models
