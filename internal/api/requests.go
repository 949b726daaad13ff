// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package api

import (
	"github.com/mbellan/socialpulse/internal/models"
)

// TrackUserEventRequest is the ingestion payload for a user event.
// The server assigns the event id and timestamp.
type TrackUserEventRequest struct {
	UserID     string            `json:"user_id" validate:"required,max=128"`
	EventType  string            `json:"event_type" validate:"required,max=64"`
	SessionID  string            `json:"session_id" validate:"max=128"`
	Metadata   map[string]string `json:"metadata" validate:"omitempty,max=32"`
	DeviceInfo map[string]string `json:"device_info" validate:"omitempty,max=32"`
	GeoInfo    map[string]string `json:"geo_info" validate:"omitempty,max=32"`
}

func (r *TrackUserEventRequest) toEvent() models.UserEvent {
	return models.UserEvent{
		UserID:     r.UserID,
		EventType:  r.EventType,
		SessionID:  r.SessionID,
		Metadata:   r.Metadata,
		DeviceInfo: r.DeviceInfo,
		GeoInfo:    r.GeoInfo,
	}
}

// TrackContentEventRequest is the ingestion payload for a content event.
// Duration is seconds spent on the content, reported when known.
type TrackContentEventRequest struct {
	ContentID string            `json:"content_id" validate:"required,max=128"`
	UserID    string            `json:"user_id" validate:"required,max=128"`
	EventType string            `json:"event_type" validate:"required,max=64"`
	Duration  *float64          `json:"duration" validate:"omitempty,gte=0"`
	Metadata  map[string]string `json:"metadata" validate:"omitempty,max=32"`
}

func (r *TrackContentEventRequest) toEvent() models.ContentEvent {
	return models.ContentEvent{
		ContentID: r.ContentID,
		UserID:    r.UserID,
		EventType: r.EventType,
		Duration:  r.Duration,
		Metadata:  r.Metadata,
	}
}
