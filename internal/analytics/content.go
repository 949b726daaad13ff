// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/mbellan/socialpulse/internal/models"
)

// Performance tiers by engagement rate, checked top-down; the first
// exceeded threshold wins.
var performanceTiers = []struct {
	threshold float64
	name      string
}{
	{10, "viral"},
	{5, "high_performing"},
	{2, "good"},
	{0.5, "average"},
}

const poorTier = "poor"

// ContentAnalyzer aggregates content events into per-content performance
// records. Stateless; safe for concurrent use.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a content performance analyzer.
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// contentStats accumulates raw counters for one content id.
type contentStats struct {
	contentID     string
	views         int
	likes         int
	shares        int
	comments      int
	saves         int
	durationSum   float64
	uniqueViewers map[string]bool
	firstSeen     time.Time
	lastSeen      time.Time
}

// AnalyzeContent aggregates events per content id and derives engagement
// metrics and a performance tier for each. Output is sorted by content
// score descending; empty input yields an empty, well-formed report.
func (a *ContentAnalyzer) AnalyzeContent(events []models.ContentEvent) models.ContentReport {
	index := make(map[string]int)
	var stats []*contentStats

	for _, e := range events {
		i, ok := index[e.ContentID]
		if !ok {
			i = len(stats)
			index[e.ContentID] = i
			stats = append(stats, &contentStats{
				contentID:     e.ContentID,
				uniqueViewers: make(map[string]bool),
				firstSeen:     e.Timestamp,
				lastSeen:      e.Timestamp,
			})
		}
		s := stats[i]

		s.uniqueViewers[e.UserID] = true
		if e.Timestamp.Before(s.firstSeen) {
			s.firstSeen = e.Timestamp
		}
		if e.Timestamp.After(s.lastSeen) {
			s.lastSeen = e.Timestamp
		}

		switch e.EventType {
		case "view":
			s.views++
			if e.Duration != nil {
				s.durationSum += *e.Duration
			}
		case "like":
			s.likes++
		case "share":
			s.shares++
		case "comment":
			s.comments++
		case "save":
			s.saves++
		}
	}

	performance := make([]models.ContentPerformance, len(stats))
	for i, s := range stats {
		performance[i] = s.derive()
	}

	// Stable: equal scores keep first-seen order.
	sort.SliceStable(performance, func(x, y int) bool {
		return performance[x].ContentScore > performance[y].ContentScore
	})

	return models.ContentReport{
		TotalContentPieces: len(performance),
		ContentPerformance: performance,
		SummaryStatistics:  summarizeContent(performance),
	}
}

// derive computes the per-content metrics and performance tier.
func (s *contentStats) derive() models.ContentPerformance {
	engagementEvents := s.likes + s.shares + s.comments + s.saves

	var engagementRate, avgDuration, viral float64
	if s.views > 0 {
		engagementRate = float64(engagementEvents) / float64(s.views) * 100
		avgDuration = s.durationSum / float64(s.views)
		viral = float64(s.shares) / float64(s.views)
	}

	score := float64(s.views)*1 +
		float64(s.likes)*2 +
		float64(s.shares)*3 +
		float64(s.comments)*2.5 +
		float64(s.saves)*4 +
		(avgDuration/60)*5

	first, last := s.firstSeen, s.lastSeen

	return models.ContentPerformance{
		ContentID:        s.contentID,
		Views:            s.views,
		UniqueViewers:    len(s.uniqueViewers),
		Likes:            s.likes,
		Shares:           s.shares,
		Comments:         s.comments,
		Saves:            s.saves,
		EngagementRate:   round2(engagementRate),
		AvgViewDuration:  round2(avgDuration),
		ViralCoefficient: round4(viral),
		ContentScore:     round2(score),
		PerformanceClass: performanceClass(engagementRate),
		FirstSeen:        &first,
		LastSeen:         &last,
	}
}

// performanceClass maps an engagement rate to its tier.
func performanceClass(engagementRate float64) string {
	for _, tier := range performanceTiers {
		if engagementRate > tier.threshold {
			return tier.name
		}
	}
	return poorTier
}

// summarizeContent computes report-level statistics over the sorted
// performance list.
func summarizeContent(content []models.ContentPerformance) models.ContentSummary {
	summary := models.ContentSummary{
		ClassDistribution: make(map[string]int),
	}
	if len(content) == 0 {
		return summary
	}

	var rateSum, scoreSum float64
	for i := range content {
		c := &content[i]
		summary.TotalViews += c.Views
		summary.TotalEngagementEvents += c.Likes + c.Shares + c.Comments + c.Saves
		summary.ClassDistribution[c.PerformanceClass]++
		rateSum += c.EngagementRate
		scoreSum += c.ContentScore
		if c.PerformanceClass == "viral" || c.PerformanceClass == "high_performing" {
			summary.EngagementLeaders = append(summary.EngagementLeaders, *c)
		}
	}

	n := float64(len(content))
	summary.AvgEngagementRate = round2(rateSum / n)
	summary.AvgContentScore = round2(scoreSum / n)
	summary.TopPerformer = &content[0]

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
