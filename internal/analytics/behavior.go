// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package analytics

import (
	"fmt"
	"sort"

	"github.com/mbellan/socialpulse/internal/models"
)

// behaviorPattern is one named reference sequence of event types.
// Declaration order is the tie-break order: when two patterns score equally,
// the earlier entry wins.
type behaviorPattern struct {
	name   string
	events []string
}

// behaviorPatterns is the fixed classification table. Similarity against a
// journey is membership-based, so repeated entries only affect the pattern
// length used as the score denominator.
var behaviorPatterns = []behaviorPattern{
	{"explorer", []string{"view", "browse", "search", "view", "browse"}},
	{"consumer", []string{"view", "like", "share", "comment"}},
	{"creator", []string{"create", "edit", "publish", "share"}},
	{"social", []string{"follow", "like", "comment", "share", "message"}},
	{"researcher", []string{"search", "view", "save", "search", "view"}},
	{"passive", []string{"view", "view", "view"}},
}

// mixedPattern is assigned when no reference pattern scores above
// patternThreshold.
const (
	mixedPattern     = "mixed"
	patternThreshold = 0.3
)

// funnelStage tags one conversion milestone with its representative event
// types. Stages are declared in funnel order; the journey's position is the
// last declared stage matched by any event (last match wins).
type funnelStage struct {
	name   string
	events []string
}

var funnelStages = []funnelStage{
	{"awareness", []string{"view", "browse", "search"}},
	{"interest", []string{"like", "save", "follow"}},
	{"consideration", []string{"compare", "research", "detailed_view"}},
	{"conversion", []string{"create", "publish", "purchase", "subscribe"}},
	{"retention", []string{"return_visit", "regular_usage", "refer"}},
}

// highValueActions are the event types that earn the engagement score's
// high-value bonus.
var highValueActions = map[string]bool{
	"create":  true,
	"publish": true,
	"share":   true,
	"comment": true,
	"follow":  true,
}

// BehaviorOptions configures journey grouping.
type BehaviorOptions struct {
	// GroupBySessionOnly keys journeys on session id alone. The default
	// (user_id, session_id) grouping collapses a user's id-less events
	// into one "default" journey.
	GroupBySessionOnly bool
}

// BehaviorAnalyzer classifies user journeys. Stateless; safe for
// concurrent use.
type BehaviorAnalyzer struct {
	opts BehaviorOptions
}

// NewBehaviorAnalyzer creates a behavior analyzer with the given options.
func NewBehaviorAnalyzer(opts BehaviorOptions) *BehaviorAnalyzer {
	return &BehaviorAnalyzer{opts: opts}
}

// AnalyzeJourneys groups events into journeys, classifies each one, and
// returns per-journey records plus cross-journey aggregates.
// Empty input yields a report with zero journeys and empty aggregates.
func (a *BehaviorAnalyzer) AnalyzeJourneys(events []models.UserEvent) models.BehaviorReport {
	journeys := a.groupJourneys(events)

	insights := make([]models.JourneyInsight, 0, len(journeys))
	for _, j := range journeys {
		insights = append(insights, a.analyzeJourney(j))
	}

	return models.BehaviorReport{
		TotalJourneys:     len(insights),
		Journeys:          insights,
		AggregatedMetrics: aggregateJourneys(insights),
	}
}

// journey is one grouped, time-ordered event sequence.
type journey struct {
	key    string
	events []models.UserEvent
}

// groupJourneys buckets events by grouping key, preserving first-seen key
// order for deterministic output, and sorts each bucket by timestamp.
func (a *BehaviorAnalyzer) groupJourneys(events []models.UserEvent) []journey {
	index := make(map[string]int)
	var journeys []journey

	for _, e := range events {
		key := a.journeyKey(&e)
		i, ok := index[key]
		if !ok {
			i = len(journeys)
			index[key] = i
			journeys = append(journeys, journey{key: key})
		}
		journeys[i].events = append(journeys[i].events, e)
	}

	for i := range journeys {
		evs := journeys[i].events
		// Stable: equal timestamps keep insertion order.
		sort.SliceStable(evs, func(x, y int) bool {
			return evs[x].Timestamp.Before(evs[y].Timestamp)
		})
	}

	return journeys
}

// journeyKey derives the grouping key for one event.
func (a *BehaviorAnalyzer) journeyKey(e *models.UserEvent) string {
	session := e.SessionID
	if session == "" {
		session = "default"
	}
	if a.opts.GroupBySessionOnly {
		return session
	}
	return fmt.Sprintf("%s_%s", e.UserID, session)
}

// analyzeJourney computes the insight record for one time-ordered journey.
func (a *BehaviorAnalyzer) analyzeJourney(j journey) models.JourneyInsight {
	sequence := make([]string, len(j.events))
	unique := make(map[string]bool)
	for i, e := range j.events {
		sequence[i] = e.EventType
		unique[e.EventType] = true
	}

	duration := j.events[len(j.events)-1].Timestamp.Sub(j.events[0].Timestamp).Seconds()

	return models.JourneyInsight{
		JourneyID:        j.key,
		UserID:           j.events[0].UserID,
		SessionDuration:  duration,
		TotalEvents:      len(j.events),
		UniqueEventTypes: len(unique),
		EventSequence:    sequence,
		BehaviorPattern:  classifyPattern(sequence),
		EngagementScore:  engagementScore(j.events),
		FunnelPosition:   funnelPosition(sequence),
	}
}

// classifyPattern returns the best-scoring reference pattern, or "mixed"
// when the best score does not exceed the threshold.
func classifyPattern(sequence []string) string {
	best := mixedPattern
	bestScore := -1.0
	for _, p := range behaviorPatterns {
		if score := patternSimilarity(sequence, p.events); score > bestScore {
			bestScore = score
			best = p.name
		}
	}
	if bestScore <= patternThreshold {
		return mixedPattern
	}
	return best
}

// patternSimilarity scores a sequence against a reference pattern:
// the count of sequence events present anywhere in the pattern, divided by
// max(len(sequence), len(pattern)).
func patternSimilarity(sequence, pattern []string) float64 {
	if len(sequence) == 0 || len(pattern) == 0 {
		return 0
	}

	members := make(map[string]bool, len(pattern))
	for _, p := range pattern {
		members[p] = true
	}

	matches := 0
	for _, e := range sequence {
		if members[e] {
			matches++
		}
	}

	denom := len(sequence)
	if len(pattern) > denom {
		denom = len(pattern)
	}
	return float64(matches) / float64(denom)
}

// engagementScore computes the 0-100 composite score:
// event volume (5/event, cap 40) + type diversity (3/type) + high-value
// actions (8 each) + session duration bonus (0.5/minute, cap 15).
func engagementScore(events []models.UserEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	base := float64(len(events)) * 5
	if base > 40 {
		base = 40
	}

	unique := make(map[string]bool)
	highValue := 0
	for _, e := range events {
		unique[e.EventType] = true
		if highValueActions[e.EventType] {
			highValue++
		}
	}

	score := base + float64(len(unique))*3 + float64(highValue)*8

	if len(events) > 1 {
		minutes := events[len(events)-1].Timestamp.Sub(events[0].Timestamp).Minutes()
		bonus := minutes * 0.5
		if bonus > 15 {
			bonus = 15
		}
		score += bonus
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// funnelPosition returns the furthest declared stage any event reaches.
func funnelPosition(sequence []string) string {
	position := funnelStages[0].name
	for _, stage := range funnelStages {
		for _, e := range sequence {
			if contains(stage.events, e) {
				position = stage.name
				break
			}
		}
	}
	return position
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// aggregateJourneys computes cross-journey averages and distributions.
// Distributions are probabilities summing to 1.0 over all journeys.
func aggregateJourneys(journeys []models.JourneyInsight) models.JourneyAggregates {
	agg := models.JourneyAggregates{
		PatternDistribution: make(map[string]float64),
		FunnelDistribution:  make(map[string]float64),
	}
	if len(journeys) == 0 {
		return agg
	}

	n := float64(len(journeys))
	for _, j := range journeys {
		agg.AvgSessionDuration += j.SessionDuration / n
		agg.AvgEventsPerSession += float64(j.TotalEvents) / n
		agg.AvgEngagementScore += j.EngagementScore / n
		agg.PatternDistribution[j.BehaviorPattern] += 1 / n
		agg.FunnelDistribution[j.FunnelPosition] += 1 / n
	}

	return agg
}
