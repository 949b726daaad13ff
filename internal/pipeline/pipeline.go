// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mbellan/socialpulse/internal/analytics"
	"github.com/mbellan/socialpulse/internal/config"
	"github.com/mbellan/socialpulse/internal/logging"
	"github.com/mbellan/socialpulse/internal/metrics"
	"github.com/mbellan/socialpulse/internal/models"
)

// Store is the persistence surface the pipeline drains into and the
// analyzers read back from.
type Store interface {
	InsertUserEventsBatch(ctx context.Context, events []models.UserEvent) error
	InsertContentEventsBatch(ctx context.Context, events []models.ContentEvent) error
	InsertMetricSamples(ctx context.Context, samples []models.MetricSample) error
	UserEventsSince(ctx context.Context, cutoff time.Time) ([]models.UserEvent, error)
	ContentEventsSince(ctx context.Context, cutoff time.Time) ([]models.ContentEvent, error)
	UserActivitySummary(ctx context.Context, userID string, periodDays int) (*models.ActivitySummary, error)
}

// event is the buffered union of the two trackable event kinds; exactly
// one field is set.
type event struct {
	user    *models.UserEvent
	content *models.ContentEvent
}

// Pipeline ties the event buffer, the metrics aggregator, and the store
// together. Producers enqueue via the Track methods; a background drain
// loop persists batches behind a circuit breaker.
type Pipeline struct {
	cfg       config.PipelineConfig
	analytics config.AnalyticsConfig

	store    Store
	buffer   *EventBuffer[event]
	agg      *MetricsAggregator
	breaker  *gobreaker.CircuitBreaker[any]
	behavior *analytics.BehaviorAnalyzer
	content  *analytics.ContentAnalyzer
	log      zerolog.Logger

	startedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

// New creates a pipeline over store. Call Start (or run Serve under a
// supervisor) to begin draining.
func New(cfg *config.Config, store Store) *Pipeline {
	p := &Pipeline{
		cfg:       cfg.Pipeline,
		analytics: cfg.Analytics,
		store:     store,
		buffer:    NewEventBuffer[event](cfg.Pipeline.BufferSize),
		agg:       NewMetricsAggregator(cfg.Pipeline.HistogramLimit),
		behavior: analytics.NewBehaviorAnalyzer(analytics.BehaviorOptions{
			GroupBySessionOnly: cfg.Analytics.GroupBySessionOnly,
		}),
		content:   analytics.NewContentAnalyzer(),
		log:       logging.With().Str("component", "pipeline").Logger(),
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	p.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "storage",
		Timeout: cfg.Pipeline.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Pipeline.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerOpen(to == gobreaker.StateOpen)
			p.log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return p
}

// TrackUserEvent assigns the event an id and timestamp if missing,
// enqueues it, and bumps the per-type counters. Returns the event id.
// Never blocks and never fails; a full buffer evicts the oldest event.
func (p *Pipeline) TrackUserEvent(e models.UserEvent) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	if p.buffer.Push(event{user: &e}) {
		metrics.BufferEvictions.Inc()
	}
	metrics.BufferSize.Set(float64(p.buffer.Len()))
	metrics.RecordIngest("user")

	p.agg.Increment("user_events."+e.EventType, 1, nil)
	p.agg.Increment("user_events.total", 1, nil)

	return e.ID
}

// TrackContentEvent is the content-side counterpart of TrackUserEvent.
// Any reported duration additionally feeds the content_duration histogram.
func (p *Pipeline) TrackContentEvent(e models.ContentEvent) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	if p.buffer.Push(event{content: &e}) {
		metrics.BufferEvictions.Inc()
	}
	metrics.BufferSize.Set(float64(p.buffer.Len()))
	metrics.RecordIngest("content")

	p.agg.Increment("content_events."+e.EventType, 1, nil)
	p.agg.Increment("content_events.total", 1, nil)
	if e.Duration != nil {
		p.agg.Observe("content_duration", *e.Duration, nil)
	}

	return e.ID
}

// Serve runs the drain loop until ctx is cancelled, then drains the
// remaining buffered events before returning. Implements suture.Service.
func (p *Pipeline) Serve(ctx context.Context) error {
	p.log.Info().
		Int("buffer_size", p.cfg.BufferSize).
		Int("batch_size", p.cfg.BatchSize).
		Dur("flush_interval", p.cfg.FlushInterval).
		Msg("pipeline started")

	timer := time.NewTimer(p.cfg.FlushInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.drainRemaining()
			return ctx.Err()
		case <-timer.C:
			if err := p.flush(ctx); err != nil {
				timer.Reset(p.cfg.ErrorBackoff)
			} else {
				timer.Reset(p.cfg.FlushInterval)
			}
		}
	}
}

// String names the pipeline in supervisor logs.
func (p *Pipeline) String() string {
	return "analytics-pipeline"
}

// Start launches the drain loop in the background. Idempotent.
func (p *Pipeline) Start() {
	p.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.started.Store(true)
		go func() {
			defer close(p.done)
			_ = p.Serve(ctx)
		}()
	})
}

// Shutdown stops the drain loop started by Start and waits for the
// final drain to finish or ctx to expire. Idempotent.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	if !p.started.Load() {
		return nil
	}
	p.stopOnce.Do(p.cancel)

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flush drains one batch and persists it through the circuit breaker.
// A failed batch is dropped; the caller backs off before the next cycle.
func (p *Pipeline) flush(ctx context.Context) error {
	batch := p.buffer.Drain(p.cfg.BatchSize)
	metrics.BufferSize.Set(float64(p.buffer.Len()))
	if len(batch) == 0 {
		return nil
	}

	users := make([]models.UserEvent, 0, len(batch))
	contents := make([]models.ContentEvent, 0)
	for _, e := range batch {
		switch {
		case e.user != nil:
			users = append(users, *e.user)
		case e.content != nil:
			contents = append(contents, *e.content)
		}
	}

	start := time.Now()
	_, err := p.breaker.Execute(func() (any, error) {
		if len(users) > 0 {
			if err := p.store.InsertUserEventsBatch(ctx, users); err != nil {
				return nil, err
			}
		}
		if len(contents) > 0 {
			if err := p.store.InsertContentEventsBatch(ctx, contents); err != nil {
				return nil, err
			}
		}
		// Snapshots ride along with non-empty flushes so idle periods
		// do not grow the metrics table.
		if p.cfg.MetricSnapshots {
			if err := p.store.InsertMetricSamples(ctx, p.agg.Snapshot(time.Now().UTC())); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		metrics.RecordFlushError(len(batch))
		p.log.Error().Err(err).
			Int("batch_size", len(batch)).
			Msg("flush failed, batch dropped")
		return err
	}

	metrics.RecordFlush(time.Since(start), len(batch))
	p.log.Debug().
		Int("user_events", len(users)).
		Int("content_events", len(contents)).
		Dur("elapsed", time.Since(start)).
		Msg("flushed batch")
	return nil
}

// drainRemaining flushes everything left in the buffer during shutdown,
// stopping early on the first persistence failure.
func (p *Pipeline) drainRemaining() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for p.buffer.Len() > 0 {
		if err := p.flush(ctx); err != nil {
			p.log.Error().Err(err).
				Int("remaining", p.buffer.Len()).
				Msg("final drain aborted")
			return
		}
	}
	p.log.Info().Msg("pipeline drained")
}

// RealtimeMetrics returns the in-memory aggregator snapshot together
// with pipeline health. It never touches the database.
func (p *Pipeline) RealtimeMetrics() models.RealtimeReport {
	return models.RealtimeReport{
		Timestamp:       time.Now().UTC(),
		UptimeSeconds:   time.Since(p.startedAt).Seconds(),
		BufferedEvents:  p.buffer.Len(),
		BufferEvictions: p.buffer.Evicted(),
		BreakerState:    p.breaker.State().String(),
		Metrics:         p.agg.Summary(),
	}
}

// UserBehaviorInsights analyzes persisted user events from the last
// lookbackHours (the configured default when zero or negative).
func (p *Pipeline) UserBehaviorInsights(ctx context.Context, lookbackHours int) (models.BehaviorReport, error) {
	if lookbackHours <= 0 {
		lookbackHours = p.analytics.DefaultLookbackHours
	}
	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)

	start := time.Now()
	events, err := p.store.UserEventsSince(ctx, cutoff)
	metrics.RecordInsightQuery("user_behavior", time.Since(start), err)
	if err != nil {
		return models.BehaviorReport{}, err
	}

	return p.behavior.AnalyzeJourneys(events), nil
}

// ContentPerformanceInsights analyzes persisted content events from the
// last lookbackHours (the configured default when zero or negative).
func (p *Pipeline) ContentPerformanceInsights(ctx context.Context, lookbackHours int) (models.ContentReport, error) {
	if lookbackHours <= 0 {
		lookbackHours = p.analytics.DefaultLookbackHours
	}
	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)

	start := time.Now()
	events, err := p.store.ContentEventsSince(ctx, cutoff)
	metrics.RecordInsightQuery("content_performance", time.Since(start), err)
	if err != nil {
		return models.ContentReport{}, err
	}

	return p.content.AnalyzeContent(events), nil
}

// UserActivity summarizes one user's persisted events over periodDays.
func (p *Pipeline) UserActivity(ctx context.Context, userID string, periodDays int) (*models.ActivitySummary, error) {
	start := time.Now()
	summary, err := p.store.UserActivitySummary(ctx, userID, periodDays)
	metrics.RecordInsightQuery("user_activity", time.Since(start), err)
	return summary, err
}
