// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mbellan/socialpulse/internal/models"
)

// MetricsAggregator keeps in-memory counters, gauges, and raw histogram
// samples keyed by metric name plus optional dimensions. Safe for
// concurrent use.
type MetricsAggregator struct {
	mu         sync.RWMutex
	counters   map[string]float64
	gauges     map[string]float64
	histograms map[string][]float64

	// histLimit bounds samples retained per histogram key; once reached,
	// the oldest sample is discarded. Zero means unbounded.
	histLimit int
}

// NewMetricsAggregator creates an empty aggregator retaining at most
// histogramLimit samples per histogram key (zero for unbounded).
func NewMetricsAggregator(histogramLimit int) *MetricsAggregator {
	return &MetricsAggregator{
		counters:   make(map[string]float64),
		gauges:     make(map[string]float64),
		histograms: make(map[string][]float64),
		histLimit:  histogramLimit,
	}
}

// metricKey canonicalizes a name plus dimensions into "name[k=v,...]"
// with keys sorted, so dimension order never splits a series. A name
// with no dimensions is used as-is.
func metricKey(name string, dims map[string]string) string {
	if len(dims) == 0 {
		return name
	}
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(dims[k])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Increment adds value to the counter identified by name and dims.
func (m *MetricsAggregator) Increment(name string, value float64, dims map[string]string) {
	key := metricKey(name, dims)
	m.mu.Lock()
	m.counters[key] += value
	m.mu.Unlock()
}

// SetGauge overwrites the gauge identified by name and dims.
func (m *MetricsAggregator) SetGauge(name string, value float64, dims map[string]string) {
	key := metricKey(name, dims)
	m.mu.Lock()
	m.gauges[key] = value
	m.mu.Unlock()
}

// Observe records a histogram sample under name and dims, discarding
// the oldest sample once the per-key limit is reached.
func (m *MetricsAggregator) Observe(name string, value float64, dims map[string]string) {
	key := metricKey(name, dims)
	m.mu.Lock()
	h := m.histograms[key]
	if m.histLimit > 0 && len(h) >= m.histLimit {
		copy(h, h[1:])
		h[len(h)-1] = value
	} else {
		h = append(h, value)
	}
	m.histograms[key] = h
	m.mu.Unlock()
}

// Summary returns a consistent snapshot of every counter, gauge, and
// histogram. Histogram statistics include p50/p95/p99 computed by
// linear interpolation between closest ranks.
func (m *MetricsAggregator) Summary() models.MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := models.MetricsSummary{
		Counters:   make(map[string]float64, len(m.counters)),
		Gauges:     make(map[string]float64, len(m.gauges)),
		Histograms: make(map[string]models.HistogramSummary, len(m.histograms)),
	}
	for k, v := range m.counters {
		s.Counters[k] = v
	}
	for k, v := range m.gauges {
		s.Gauges[k] = v
	}
	for k, samples := range m.histograms {
		s.Histograms[k] = summarizeHistogram(samples)
	}
	return s
}

// Snapshot flattens the current counters and gauges into persistable
// samples, all stamped with now. Histograms are summarized per statistic
// so the stored series stays queryable with plain SQL.
func (m *MetricsAggregator) Snapshot(now time.Time) []models.MetricSample {
	summary := m.Summary()

	samples := make([]models.MetricSample, 0,
		len(summary.Counters)+len(summary.Gauges)+len(summary.Histograms)*2)
	for k, v := range summary.Counters {
		samples = append(samples, models.MetricSample{
			Name: k, Value: v, Timestamp: now,
			Dimensions: map[string]string{"kind": "counter"},
		})
	}
	for k, v := range summary.Gauges {
		samples = append(samples, models.MetricSample{
			Name: k, Value: v, Timestamp: now,
			Dimensions: map[string]string{"kind": "gauge"},
		})
	}
	for k, h := range summary.Histograms {
		samples = append(samples,
			models.MetricSample{
				Name: k, Value: h.Avg, Timestamp: now,
				Dimensions: map[string]string{"kind": "histogram", "stat": "avg"},
			},
			models.MetricSample{
				Name: k, Value: h.P95, Timestamp: now,
				Dimensions: map[string]string{"kind": "histogram", "stat": "p95"},
			},
		)
	}

	// Map iteration order is random; sort for deterministic storage.
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return fmt.Sprint(samples[i].Dimensions) < fmt.Sprint(samples[j].Dimensions)
	})
	return samples
}

func summarizeHistogram(samples []float64) models.HistogramSummary {
	h := models.HistogramSummary{Count: len(samples)}
	if len(samples) == 0 {
		return h
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	for _, v := range sorted {
		h.Sum += v
	}
	h.Avg = h.Sum / float64(len(sorted))
	h.Min = sorted[0]
	h.Max = sorted[len(sorted)-1]
	h.P50 = percentile(sorted, 50)
	h.P95 = percentile(sorted, 95)
	h.P99 = percentile(sorted, 99)
	return h
}

// percentile computes the p-th percentile of sorted via linear
// interpolation between the two closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
