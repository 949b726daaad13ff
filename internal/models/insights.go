// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package models

import (
	"time"
)

// JourneyInsight describes one analyzed user journey: the ordered event
// sequence sharing a (user, session) grouping key.
type JourneyInsight struct {
	JourneyID        string   `json:"journey_id"`
	UserID           string   `json:"user_id"`
	SessionDuration  float64  `json:"session_duration"` // seconds
	TotalEvents      int      `json:"total_events"`
	UniqueEventTypes int      `json:"unique_event_types"`
	EventSequence    []string `json:"event_sequence"`
	BehaviorPattern  string   `json:"behavior_pattern"`
	EngagementScore  float64  `json:"engagement_score"`
	FunnelPosition   string   `json:"conversion_funnel_position"`
}

// JourneyAggregates holds cross-journey averages and distributions.
// Distribution values are probabilities summing to 1.0 over all journeys.
type JourneyAggregates struct {
	AvgSessionDuration  float64            `json:"avg_session_duration"`
	AvgEventsPerSession float64            `json:"avg_events_per_session"`
	AvgEngagementScore  float64            `json:"avg_engagement_score"`
	PatternDistribution map[string]float64 `json:"pattern_distribution"`
	FunnelDistribution  map[string]float64 `json:"funnel_distribution"`
}

// BehaviorReport is the result of a user behavior analysis pass.
// An empty input yields TotalJourneys == 0 with empty (non-nil) slices.
type BehaviorReport struct {
	TotalJourneys     int               `json:"total_journeys"`
	Journeys          []JourneyInsight  `json:"journeys"`
	AggregatedMetrics JourneyAggregates `json:"aggregated_metrics"`
}

// ContentPerformance holds the per-content aggregate counters and the
// derived scores for one content piece.
type ContentPerformance struct {
	ContentID        string     `json:"content_id"`
	Views            int        `json:"views"`
	UniqueViewers    int        `json:"unique_viewers"`
	Likes            int        `json:"likes"`
	Shares           int        `json:"shares"`
	Comments         int        `json:"comments"`
	Saves            int        `json:"saves"`
	EngagementRate   float64    `json:"engagement_rate"`
	AvgViewDuration  float64    `json:"avg_view_duration"`
	ViralCoefficient float64    `json:"viral_coefficient"`
	ContentScore     float64    `json:"content_score"`
	PerformanceClass string     `json:"performance_class"`
	FirstSeen        *time.Time `json:"first_seen,omitempty"`
	LastSeen         *time.Time `json:"last_seen,omitempty"`
}

// ContentSummary holds summary statistics over a content performance report.
// EngagementLeaders lists the viral and high_performing content, keeping
// the report's score-descending order.
type ContentSummary struct {
	TotalViews            int                  `json:"total_views"`
	TotalEngagementEvents int                  `json:"total_engagement_events"`
	AvgEngagementRate     float64              `json:"avg_engagement_rate"`
	AvgContentScore       float64              `json:"avg_content_score"`
	ClassDistribution     map[string]int       `json:"performance_class_distribution"`
	TopPerformer          *ContentPerformance  `json:"top_performer,omitempty"`
	EngagementLeaders     []ContentPerformance `json:"engagement_leaders"`
}

// ContentReport is the result of a content performance analysis pass,
// sorted by content score descending.
type ContentReport struct {
	TotalContentPieces int                  `json:"total_content_pieces"`
	ContentPerformance []ContentPerformance `json:"content_performance"`
	SummaryStatistics  ContentSummary       `json:"summary_statistics"`
}

// HistogramSummary holds the computed statistics for one histogram key.
// Percentiles use linear interpolation between closest ranks.
type HistogramSummary struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
}

// MetricsSummary is a consistent snapshot of all three aggregator namespaces.
type MetricsSummary struct {
	Counters   map[string]float64          `json:"counters"`
	Gauges     map[string]float64          `json:"gauges"`
	Histograms map[string]HistogramSummary `json:"histograms"`
}

// RealtimeReport combines the aggregator snapshot with pipeline health
// for the realtime analytics surface.
type RealtimeReport struct {
	Timestamp       time.Time      `json:"timestamp"`
	UptimeSeconds   float64        `json:"uptime_seconds"`
	BufferedEvents  int            `json:"buffered_events"`
	BufferEvictions uint64         `json:"buffer_evictions"`
	BreakerState    string         `json:"breaker_state"`
	Metrics         MetricsSummary `json:"metrics"`
}

// ActivitySummary describes one user's persisted activity over a day window.
type ActivitySummary struct {
	UserID         string         `json:"user_id"`
	PeriodDays     int            `json:"period_days"`
	TotalEvents    int            `json:"total_events"`
	EventTypes     map[string]int `json:"event_types"`
	MostCommon     string         `json:"most_common_activity"`
	ActivityByDay  map[string]int `json:"activity_by_day"` // YYYY-MM-DD -> count
	FirstActivity  *time.Time     `json:"first_activity,omitempty"`
	LatestActivity *time.Time     `json:"latest_activity,omitempty"`
}
