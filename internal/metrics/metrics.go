// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the analytics pipeline:
// - ingestion throughput and buffer pressure
// - drain cycle batch sizes, durations, and failures
// - insight query latency
// These are process-health metrics, distinct from the domain-level
// aggregator that backs the realtime analytics API.

var (
	// Ingestion
	EventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_events_ingested_total",
			Help: "Total events accepted by the pipeline",
		},
		[]string{"kind"}, // "user", "content"
	)

	BufferEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_buffer_evictions_total",
			Help: "Events silently evicted because the buffer was full",
		},
	)

	BufferSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_buffer_size",
			Help: "Events currently waiting in the ingestion buffer",
		},
	)

	// Drain cycle
	FlushDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_flush_duration_seconds",
			Help:    "Duration of drain-persist cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FlushBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_flush_batch_size",
			Help:    "Events persisted per drain cycle",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	FlushErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_flush_errors_total",
			Help: "Failed drain-persist cycles (batch dropped)",
		},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_events_dropped_total",
			Help: "Events lost to failed persistence batches",
		},
	)

	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_storage_breaker_open",
			Help: "1 when the storage circuit breaker is open, 0 otherwise",
		},
	)

	// Insight queries
	InsightQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insight_query_duration_seconds",
			Help:    "Duration of insight queries in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"query"}, // "behavior", "content", "activity"
	)

	InsightQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_query_errors_total",
			Help: "Insight queries that failed at the storage layer",
		},
		[]string{"query"},
	)
)

// RecordIngest records one accepted event of the given kind.
func RecordIngest(kind string) {
	EventsIngested.WithLabelValues(kind).Inc()
}

// RecordFlush records a completed drain cycle.
func RecordFlush(d time.Duration, batch int) {
	FlushDuration.Observe(d.Seconds())
	FlushBatchSize.Observe(float64(batch))
}

// RecordFlushError records a failed drain cycle and the events it dropped.
func RecordFlushError(dropped int) {
	FlushErrors.Inc()
	EventsDropped.Add(float64(dropped))
}

// RecordInsightQuery records an insight query outcome.
func RecordInsightQuery(query string, d time.Duration, err error) {
	InsightQueryDuration.WithLabelValues(query).Observe(d.Seconds())
	if err != nil {
		InsightQueryErrors.WithLabelValues(query).Inc()
	}
}

// SetBreakerOpen reflects the storage breaker state as a gauge.
func SetBreakerOpen(open bool) {
	if open {
		BreakerState.Set(1)
	} else {
		BreakerState.Set(0)
	}
}
