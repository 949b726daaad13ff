// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/mbellan/socialpulse/internal/models"
)

// InsertUserEventsBatch atomically inserts a batch of user events.
// All-or-nothing: if any insert fails the whole batch is rolled back.
func (db *DB) InsertUserEventsBatch(ctx context.Context, events []models.UserEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO user_events (user_id, event_type, timestamp, session_id, metadata, device_info, geo_info)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare user event insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]
		meta, err := marshalMap(e.Metadata)
		if err != nil {
			return fmt.Errorf("failed to serialize metadata for event %s: %w", e.ID, err)
		}
		device, err := marshalMap(e.DeviceInfo)
		if err != nil {
			return fmt.Errorf("failed to serialize device info for event %s: %w", e.ID, err)
		}
		geo, err := marshalMap(e.GeoInfo)
		if err != nil {
			return fmt.Errorf("failed to serialize geo info for event %s: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.UserID, e.EventType, e.Timestamp, nullString(e.SessionID), meta, device, geo); err != nil {
			return fmt.Errorf("failed to insert user event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user event batch: %w", err)
	}
	return nil
}

// InsertContentEventsBatch atomically inserts a batch of content events.
func (db *DB) InsertContentEventsBatch(ctx context.Context, events []models.ContentEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO content_events (content_id, user_id, event_type, timestamp, duration, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare content event insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]
		meta, err := marshalMap(e.Metadata)
		if err != nil {
			return fmt.Errorf("failed to serialize metadata for event %s: %w", e.ID, err)
		}
		var duration sql.NullFloat64
		if e.Duration != nil {
			duration = sql.NullFloat64{Float64: *e.Duration, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, e.ContentID, e.UserID, e.EventType, e.Timestamp, duration, meta); err != nil {
			return fmt.Errorf("failed to insert content event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content event batch: %w", err)
	}
	return nil
}

// InsertMetricSamples persists aggregator snapshot rows. Samples are
// best-effort observability data, but the insert is still transactional so a
// partial snapshot never lands.
func (db *DB) InsertMetricSamples(ctx context.Context, samples []models.MetricSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO analytics_metrics (metric_name, metric_value, dimensions, timestamp)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare metric sample insert: %w", err)
	}
	defer stmt.Close()

	for i := range samples {
		s := &samples[i]
		dims, err := marshalMap(s.Dimensions)
		if err != nil {
			return fmt.Errorf("failed to serialize dimensions for %s: %w", s.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, s.Name, s.Value, dims, s.Timestamp); err != nil {
			return fmt.Errorf("failed to insert metric sample %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metric samples: %w", err)
	}
	return nil
}

// UserEventsSince returns persisted user events with timestamp >= cutoff,
// in timestamp order. Ties are returned in insertion (id) order.
func (db *DB) UserEventsSince(ctx context.Context, cutoff time.Time) ([]models.UserEvent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, event_type, timestamp, session_id, metadata, device_info, geo_info
		FROM user_events
		WHERE timestamp >= ?
		ORDER BY timestamp, id
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query user events: %w", err)
	}
	defer rows.Close()

	var events []models.UserEvent
	for rows.Next() {
		var (
			e          models.UserEvent
			sessionID  sql.NullString
			metadata   sql.NullString
			deviceInfo sql.NullString
			geoInfo    sql.NullString
		)
		if err := rows.Scan(&e.UserID, &e.EventType, &e.Timestamp, &sessionID, &metadata, &deviceInfo, &geoInfo); err != nil {
			return nil, fmt.Errorf("failed to scan user event: %w", err)
		}
		e.SessionID = sessionID.String
		if e.Metadata, err = unmarshalMap(metadata); err != nil {
			return nil, fmt.Errorf("failed to decode user event metadata: %w", err)
		}
		if e.DeviceInfo, err = unmarshalMap(deviceInfo); err != nil {
			return nil, fmt.Errorf("failed to decode user event device info: %w", err)
		}
		if e.GeoInfo, err = unmarshalMap(geoInfo); err != nil {
			return nil, fmt.Errorf("failed to decode user event geo info: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user events: %w", err)
	}

	return events, nil
}

// ContentEventsSince returns persisted content events with timestamp >= cutoff,
// in timestamp order.
func (db *DB) ContentEventsSince(ctx context.Context, cutoff time.Time) ([]models.ContentEvent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT content_id, user_id, event_type, timestamp, duration, metadata
		FROM content_events
		WHERE timestamp >= ?
		ORDER BY timestamp, id
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query content events: %w", err)
	}
	defer rows.Close()

	var events []models.ContentEvent
	for rows.Next() {
		var (
			e        models.ContentEvent
			duration sql.NullFloat64
			metadata sql.NullString
		)
		if err := rows.Scan(&e.ContentID, &e.UserID, &e.EventType, &e.Timestamp, &duration, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan content event: %w", err)
		}
		if duration.Valid {
			d := duration.Float64
			e.Duration = &d
		}
		if e.Metadata, err = unmarshalMap(metadata); err != nil {
			return nil, fmt.Errorf("failed to decode content event metadata: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content events: %w", err)
	}

	return events, nil
}

// UserActivitySummary aggregates one user's persisted activity over the last
// periodDays days: totals, per-type counts, and a per-day activity map.
func (db *DB) UserActivitySummary(ctx context.Context, userID string, periodDays int) (*models.ActivitySummary, error) {
	cutoff := time.Now().AddDate(0, 0, -periodDays)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT event_type, CAST(timestamp AS DATE), COUNT(*), MIN(timestamp), MAX(timestamp)
		FROM user_events
		WHERE user_id = ? AND timestamp >= ?
		GROUP BY event_type, CAST(timestamp AS DATE)
	`, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query user activity: %w", err)
	}
	defer rows.Close()

	summary := &models.ActivitySummary{
		UserID:        userID,
		PeriodDays:    periodDays,
		EventTypes:    make(map[string]int),
		ActivityByDay: make(map[string]int),
	}

	for rows.Next() {
		var (
			eventType   string
			day         time.Time
			count       int
			first, last time.Time
		)
		if err := rows.Scan(&eventType, &day, &count, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan user activity row: %w", err)
		}
		summary.TotalEvents += count
		summary.EventTypes[eventType] += count
		summary.ActivityByDay[day.Format("2006-01-02")] += count
		if summary.FirstActivity == nil || first.Before(*summary.FirstActivity) {
			f := first
			summary.FirstActivity = &f
		}
		if summary.LatestActivity == nil || last.After(*summary.LatestActivity) {
			l := last
			summary.LatestActivity = &l
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user activity: %w", err)
	}

	best := 0
	for eventType, count := range summary.EventTypes {
		if count > best || (count == best && summary.MostCommon == "") {
			best = count
			summary.MostCommon = eventType
		}
	}

	return summary, nil
}

// marshalMap serializes a metadata map to JSON text; nil and empty maps
// persist as NULL.
func marshalMap(m map[string]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// unmarshalMap decodes JSON metadata text; NULL yields a nil map.
func unmarshalMap(s sql.NullString) (map[string]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// nullString converts "" to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
