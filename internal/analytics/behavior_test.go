// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/mbellan/socialpulse/internal/models"
)

// makeJourney builds events for one user/session with the given types,
// spaced evenly across the total duration.
func makeJourney(userID, sessionID string, start time.Time, total time.Duration, types ...string) []models.UserEvent {
	events := make([]models.UserEvent, len(types))
	var step time.Duration
	if len(types) > 1 {
		step = total / time.Duration(len(types)-1)
	}
	for i, typ := range types {
		events[i] = models.UserEvent{
			UserID:    userID,
			EventType: typ,
			SessionID: sessionID,
			Timestamp: start.Add(time.Duration(i) * step),
		}
	}
	return events
}

func TestAnalyzeJourneysWorkedExample(t *testing.T) {
	// [view, view, like, share, comment] over 10 minutes:
	// pattern "consumer" (all five events are members of its type set),
	// engagement = 25 (volume) + 12 (4 distinct types) + 16 (share+comment)
	// + 5 (10min * 0.5) = 58.
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := makeJourney("u1", "s1", start, 10*time.Minute,
		"view", "view", "like", "share", "comment")

	report := NewBehaviorAnalyzer(BehaviorOptions{}).AnalyzeJourneys(events)

	if report.TotalJourneys != 1 {
		t.Fatalf("expected 1 journey, got %d", report.TotalJourneys)
	}
	j := report.Journeys[0]

	if j.BehaviorPattern != "consumer" {
		t.Errorf("expected pattern consumer, got %q", j.BehaviorPattern)
	}
	if j.EngagementScore != 58 {
		t.Errorf("expected engagement score 58, got %v", j.EngagementScore)
	}
	if j.TotalEvents != 5 || j.UniqueEventTypes != 4 {
		t.Errorf("unexpected counts: %+v", j)
	}
	if j.SessionDuration != 600 {
		t.Errorf("expected 600s session duration, got %v", j.SessionDuration)
	}
	// like reaches "interest"; nothing reaches a later stage.
	if j.FunnelPosition != "interest" {
		t.Errorf("expected funnel position interest, got %q", j.FunnelPosition)
	}
	if j.JourneyID != "u1_s1" || j.UserID != "u1" {
		t.Errorf("unexpected identity fields: %+v", j)
	}
}

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
		want     string
	}{
		{"pure views are passive", []string{"view", "view", "view"}, "passive"},
		{"creator flow", []string{"create", "edit", "publish", "share"}, "creator"},
		{"social flow", []string{"follow", "message", "comment"}, "social"},
		{"unknown events fall to mixed", []string{"zap", "zap", "zap", "zap"}, "mixed"},
		{"empty is mixed", nil, "mixed"},
		// All events match both explorer and researcher member sets at the
		// same score; explorer is declared first so it wins.
		{"declaration order breaks ties", []string{"search", "view", "search", "view", "search"}, "explorer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPattern(tt.sequence); got != tt.want {
				t.Errorf("classifyPattern(%v) = %q, want %q", tt.sequence, got, tt.want)
			}
		})
	}
}

func TestPatternSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
		pattern  []string
		want     float64
	}{
		{"full membership", []string{"view", "like"}, []string{"view", "like"}, 1.0},
		{"half match, sequence longer", []string{"view", "zap"}, []string{"view"}, 0.5},
		{"pattern length dominates denominator", []string{"view"}, []string{"view", "view", "view"}, 1.0 / 3},
		{"empty sequence", nil, []string{"view"}, 0},
		{"empty pattern", []string{"view"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patternSimilarity(tt.sequence, tt.pattern)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("patternSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngagementScoreClamps(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 20 high-value events over an hour: 40 + 3 + 160 + 15 caps at 100.
	types := make([]string, 20)
	for i := range types {
		types[i] = "share"
	}
	events := makeJourney("u1", "s1", start, time.Hour, types...)
	if got := engagementScore(events); got != 100 {
		t.Errorf("expected clamped score 100, got %v", got)
	}

	// A single event gets no duration bonus: 5 + 3 = 8.
	single := makeJourney("u1", "s1", start, 0, "view")
	if got := engagementScore(single); got != 8 {
		t.Errorf("expected score 8 for single view, got %v", got)
	}

	if got := engagementScore(nil); got != 0 {
		t.Errorf("expected 0 for no events, got %v", got)
	}
}

func TestFunnelPositionLastMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
		want     string
	}{
		{"no match defaults to awareness", []string{"zap"}, "awareness"},
		{"view is awareness", []string{"view"}, "awareness"},
		{"later stage overrides earlier", []string{"view", "like", "publish"}, "conversion"},
		{"retention beats conversion regardless of order", []string{"refer", "publish", "view"}, "retention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := funnelPosition(tt.sequence); got != tt.want {
				t.Errorf("funnelPosition(%v) = %q, want %q", tt.sequence, got, tt.want)
			}
		})
	}
}

func TestAnalyzeJourneysGrouping(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var events []models.UserEvent
	events = append(events, makeJourney("u1", "s1", start, time.Minute, "view", "like")...)
	events = append(events, makeJourney("u1", "s2", start, time.Minute, "view")...)
	// No session id: collapses into u1's "default" journey.
	events = append(events, makeJourney("u1", "", start, time.Minute, "browse", "view")...)
	events = append(events, makeJourney("u2", "s1", start, time.Minute, "view")...)

	report := NewBehaviorAnalyzer(BehaviorOptions{}).AnalyzeJourneys(events)
	if report.TotalJourneys != 4 {
		t.Fatalf("expected 4 journeys with (user, session) grouping, got %d", report.TotalJourneys)
	}

	// Session-only grouping merges u1/s1 and u2/s1 into one journey.
	sessionOnly := NewBehaviorAnalyzer(BehaviorOptions{GroupBySessionOnly: true}).AnalyzeJourneys(events)
	if sessionOnly.TotalJourneys != 3 {
		t.Fatalf("expected 3 journeys with session-only grouping, got %d", sessionOnly.TotalJourneys)
	}
}

func TestAnalyzeJourneysSortsByTimestamp(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Delivered out of order; analysis must see [view, like, share].
	events := []models.UserEvent{
		{UserID: "u1", SessionID: "s1", EventType: "share", Timestamp: start.Add(2 * time.Minute)},
		{UserID: "u1", SessionID: "s1", EventType: "view", Timestamp: start},
		{UserID: "u1", SessionID: "s1", EventType: "like", Timestamp: start.Add(time.Minute)},
	}

	report := NewBehaviorAnalyzer(BehaviorOptions{}).AnalyzeJourneys(events)
	j := report.Journeys[0]

	want := []string{"view", "like", "share"}
	for i, typ := range want {
		if j.EventSequence[i] != typ {
			t.Fatalf("expected sequence %v, got %v", want, j.EventSequence)
		}
	}
	if j.SessionDuration != 120 {
		t.Errorf("expected 120s duration, got %v", j.SessionDuration)
	}
}

func TestAnalyzeJourneysEmptyInput(t *testing.T) {
	report := NewBehaviorAnalyzer(BehaviorOptions{}).AnalyzeJourneys(nil)

	if report.TotalJourneys != 0 {
		t.Errorf("expected zero journeys, got %d", report.TotalJourneys)
	}
	if report.Journeys == nil {
		t.Error("journeys slice should be empty, not nil")
	}
	if len(report.AggregatedMetrics.PatternDistribution) != 0 {
		t.Errorf("expected empty distribution, got %v", report.AggregatedMetrics.PatternDistribution)
	}
}

func TestAggregateDistributionsSumToOne(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var events []models.UserEvent
	events = append(events, makeJourney("u1", "s1", start, time.Minute, "view", "view", "view")...)
	events = append(events, makeJourney("u2", "s1", start, time.Minute, "create", "edit", "publish", "share")...)
	events = append(events, makeJourney("u3", "s1", start, time.Minute, "zap", "zap", "zap")...)

	report := NewBehaviorAnalyzer(BehaviorOptions{}).AnalyzeJourneys(events)

	var patternSum, funnelSum float64
	for _, p := range report.AggregatedMetrics.PatternDistribution {
		patternSum += p
	}
	for _, p := range report.AggregatedMetrics.FunnelDistribution {
		funnelSum += p
	}

	if math.Abs(patternSum-1.0) > 1e-9 {
		t.Errorf("pattern distribution sums to %v, want 1.0", patternSum)
	}
	if math.Abs(funnelSum-1.0) > 1e-9 {
		t.Errorf("funnel distribution sums to %v, want 1.0", funnelSum)
	}
}
