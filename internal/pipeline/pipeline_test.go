// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mbellan/socialpulse/internal/config"
	"github.com/mbellan/socialpulse/internal/database"
	"github.com/mbellan/socialpulse/internal/models"
)

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	mu          sync.Mutex
	users       []models.UserEvent
	contents    []models.ContentEvent
	samples     []models.MetricSample
	insertCalls int
	failInserts bool
}

var errStoreDown = errors.New("store down")

func (s *fakeStore) InsertUserEventsBatch(_ context.Context, events []models.UserEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.failInserts {
		return errStoreDown
	}
	s.users = append(s.users, events...)
	return nil
}

func (s *fakeStore) InsertContentEventsBatch(_ context.Context, events []models.ContentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.failInserts {
		return errStoreDown
	}
	s.contents = append(s.contents, events...)
	return nil
}

func (s *fakeStore) InsertMetricSamples(_ context.Context, samples []models.MetricSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInserts {
		return errStoreDown
	}
	s.samples = append(s.samples, samples...)
	return nil
}

func (s *fakeStore) UserEventsSince(_ context.Context, cutoff time.Time) ([]models.UserEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserEvent
	for _, e := range s.users {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) ContentEventsSince(_ context.Context, cutoff time.Time) ([]models.ContentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ContentEvent
	for _, e := range s.contents {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) UserActivitySummary(_ context.Context, userID string, periodDays int) (*models.ActivitySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := &models.ActivitySummary{
		UserID:     userID,
		PeriodDays: periodDays,
		EventTypes: make(map[string]int),
	}
	for _, e := range s.users {
		if e.UserID == userID {
			summary.TotalEvents++
			summary.EventTypes[e.EventType]++
		}
	}
	return summary, nil
}

func (s *fakeStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *fakeStore) setFailing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInserts = fail
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			BufferSize:       100,
			BatchSize:        10,
			FlushInterval:    10 * time.Millisecond,
			ErrorBackoff:     10 * time.Millisecond,
			HistogramLimit:   1000,
			BreakerThreshold: 3,
			BreakerTimeout:   time.Minute,
		},
		Analytics: config.AnalyticsConfig{DefaultLookbackHours: 24},
	}
}

func TestTrackAssignsIdentityAndCounters(t *testing.T) {
	p := New(testConfig(), &fakeStore{})

	id := p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
	if id == "" {
		t.Fatal("expected a generated event id")
	}
	p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "like"})

	d := 42.0
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "u1", EventType: "view", Duration: &d,
	})

	rt := p.RealtimeMetrics()
	if rt.BufferedEvents != 3 {
		t.Errorf("buffered = %d, want 3", rt.BufferedEvents)
	}
	if got := rt.Metrics.Counters["user_events.view"]; got != 1 {
		t.Errorf("user_events.view = %v, want 1", got)
	}
	if got := rt.Metrics.Counters["user_events.total"]; got != 2 {
		t.Errorf("user_events.total = %v, want 2", got)
	}
	if got := rt.Metrics.Counters["content_events.total"]; got != 1 {
		t.Errorf("content_events.total = %v, want 1", got)
	}
	if h := rt.Metrics.Histograms["content_duration"]; h.Count != 1 || h.Max != 42 {
		t.Errorf("content_duration = %+v, want one sample of 42", h)
	}
}

func TestTrackContentEventDurationFeedsHistogram(t *testing.T) {
	p := New(testConfig(), &fakeStore{})

	// Durations count whenever present, regardless of event type.
	d1, d2 := 30.0, 90.0
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "u1", EventType: "view", Duration: &d1,
	})
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "u1", EventType: "like", Duration: &d2,
	})
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "u1", EventType: "share",
	})

	h := p.RealtimeMetrics().Metrics.Histograms["content_duration"]
	if h.Count != 2 {
		t.Fatalf("content_duration count = %d, want 2", h.Count)
	}
	if h.Min != 30 || h.Max != 90 {
		t.Errorf("content_duration min/max = %v/%v, want 30/90", h.Min, h.Max)
	}
}

func TestFlushPersistsDrainedBatch(t *testing.T) {
	store := &fakeStore{}
	p := New(testConfig(), store)

	for i := 0; i < 5; i++ {
		p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
	}
	p.TrackContentEvent(models.ContentEvent{ContentID: "c1", UserID: "u1", EventType: "like"})

	if err := p.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if store.userCount() != 5 {
		t.Errorf("persisted user events = %d, want 5", store.userCount())
	}
	if len(store.contents) != 1 {
		t.Errorf("persisted content events = %d, want 1", len(store.contents))
	}
	if p.buffer.Len() != 0 {
		t.Errorf("buffer not drained: %d left", p.buffer.Len())
	}
}

func TestFlushRespectsBatchSize(t *testing.T) {
	store := &fakeStore{}
	p := New(testConfig(), store)

	for i := 0; i < 25; i++ {
		p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
	}

	if err := p.flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.userCount() != 10 {
		t.Errorf("first flush persisted %d, want batch size 10", store.userCount())
	}
	if p.buffer.Len() != 15 {
		t.Errorf("buffer = %d, want 15", p.buffer.Len())
	}
}

func TestFlushFailureDropsBatch(t *testing.T) {
	store := &fakeStore{failInserts: true}
	p := New(testConfig(), store)

	p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})

	if err := p.flush(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("flush error = %v, want errStoreDown", err)
	}
	if p.buffer.Len() != 0 {
		t.Errorf("failed batch should be dropped, %d left", p.buffer.Len())
	}

	// Recovery persists only new events, never the dropped ones.
	store.setFailing(false)
	p.TrackUserEvent(models.UserEvent{UserID: "u2", EventType: "view"})
	if err := p.flush(context.Background()); err != nil {
		t.Fatalf("flush after recovery: %v", err)
	}
	if store.userCount() != 1 || store.users[0].UserID != "u2" {
		t.Errorf("expected only the post-recovery event, got %+v", store.users)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	store := &fakeStore{failInserts: true}
	p := New(testConfig(), store)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
		if err := p.flush(ctx); !errors.Is(err, errStoreDown) {
			t.Fatalf("flush %d error = %v, want errStoreDown", i, err)
		}
	}

	p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
	if err := p.flush(ctx); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("flush with open breaker = %v, want ErrOpenState", err)
	}
	if store.insertCalls != 3 {
		t.Errorf("store calls = %d, want 3 (breaker short-circuits)", store.insertCalls)
	}
	if p.RealtimeMetrics().BreakerState != "open" {
		t.Errorf("breaker state = %q, want open", p.RealtimeMetrics().BreakerState)
	}
}

func TestStartShutdownIdempotentAndDrains(t *testing.T) {
	store := &fakeStore{}
	p := New(testConfig(), store)

	for i := 0; i < 7; i++ {
		p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})
	}

	p.Start()
	p.Start() // no-op

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}

	if store.userCount() != 7 {
		t.Errorf("final drain persisted %d events, want 7", store.userCount())
	}
}

func TestServeFlushesOnInterval(t *testing.T) {
	store := &fakeStore{}
	p := New(testConfig(), store)

	p.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	}()

	p.TrackUserEvent(models.UserEvent{UserID: "u1", EventType: "view"})

	deadline := time.Now().Add(2 * time.Second)
	for store.userCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never flushed by background loop")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPipelineWithDuckDBStore(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	cfg.Pipeline.MetricSnapshots = true
	p := New(cfg, db)

	sessions := []struct{ user, session string }{
		{"alice", "s1"},
		{"bob", "s2"},
	}
	for _, s := range sessions {
		for _, et := range []string{"view", "like", "share"} {
			p.TrackUserEvent(models.UserEvent{
				UserID: s.user, SessionID: s.session, EventType: et,
			})
		}
	}
	d := 30.0
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "alice", EventType: "view", Duration: &d,
	})
	p.TrackContentEvent(models.ContentEvent{
		ContentID: "c1", UserID: "bob", EventType: "like",
	})

	ctx := context.Background()
	if err := p.flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	behavior, err := p.UserBehaviorInsights(ctx, 0)
	if err != nil {
		t.Fatalf("behavior insights: %v", err)
	}
	if behavior.TotalJourneys != 2 {
		t.Errorf("journeys = %d, want 2", behavior.TotalJourneys)
	}

	content, err := p.ContentPerformanceInsights(ctx, 0)
	if err != nil {
		t.Fatalf("content insights: %v", err)
	}
	if content.TotalContentPieces != 1 {
		t.Errorf("content pieces = %d, want 1", content.TotalContentPieces)
	}
	if content.ContentPerformance[0].Views != 1 {
		t.Errorf("views = %d, want 1", content.ContentPerformance[0].Views)
	}

	activity, err := p.UserActivity(ctx, "alice", 7)
	if err != nil {
		t.Fatalf("user activity: %v", err)
	}
	if activity.TotalEvents != 3 {
		t.Errorf("alice events = %d, want 3", activity.TotalEvents)
	}
}
