// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package models

import (
	"time"
)

// UserEvent represents a single user interaction on the platform.
// The event type is a free-form tag ("view", "like", "create", ...);
// the analyzers only interpret a fixed subset of well-known types.
type UserEvent struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	EventType  string            `json:"event_type"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionID  string            `json:"session_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	GeoInfo    map[string]string `json:"geo_info,omitempty"`
}

// ContentEvent represents a single interaction with a piece of content.
// Duration is seconds spent on the content; nil means the producer did
// not report one. The per-content view-duration average counts it only
// on "view" events, the duration histogram counts it on any event.
type ContentEvent struct {
	ID        string            `json:"id"`
	ContentID string            `json:"content_id"`
	UserID    string            `json:"user_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Duration  *float64          `json:"duration,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// MetricSample is a point-in-time snapshot of one aggregator key,
// persisted to the analytics_metrics table by the drain cycle.
type MetricSample struct {
	Name       string            `json:"metric_name"`
	Value      float64           `json:"metric_value"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}
