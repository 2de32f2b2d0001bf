// Package metrics provides the Prometheus implementation of the
// MetricsCollector port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hotbench/hotbench/internal/ports"
)

// Compile-time verification that PrometheusCollector implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector records provider requests, token usage, and
// evaluation outcomes in the default Prometheus registry.
type PrometheusCollector struct {
	llmRequests    *prometheus.CounterVec
	llmTokens      *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
	evaluations    *prometheus.CounterVec
	judgeLatency   *prometheus.HistogramVec
	otherCounters  *prometheus.CounterVec
	otherHistogram *prometheus.HistogramVec
}

// NewPrometheusCollector creates a collector and registers its metrics.
// It must be constructed at most once per process.
func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		llmRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total requests sent to text-generation providers.",
			},
			[]string{"provider", "model", "status"},
		),
		llmTokens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Total tokens exchanged with text-generation providers.",
			},
			[]string{"provider", "model", "status", "token_type"},
		),
		llmLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_latency_seconds",
				Help:    "Latency of provider requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model", "status"},
		),
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotbench_evaluations_total",
				Help: "Per-judge evaluation outcomes (live, fallback, skipped).",
			},
			[]string{"outcome"},
		),
		judgeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hotbench_evaluation_seconds",
				Help:    "Time taken by a single judge to score a single essay.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"judge"},
		),
		otherCounters: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotbench_operations_total",
				Help: "Counters without a dedicated metric.",
			},
			[]string{"operation"},
		),
		otherHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hotbench_values",
				Help:    "Histogram observations without a dedicated metric.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric"},
		),
	}
}

// RecordCounter increments the counter matching the metric name.
func (pc *PrometheusCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "llm_requests_total":
		pc.llmRequests.WithLabelValues(
			labels["provider"], labels["model"], labels["status"],
		).Add(value)
	case "llm_tokens_total":
		pc.llmTokens.WithLabelValues(
			labels["provider"], labels["model"], labels["status"], labels["token_type"],
		).Add(value)
	case "hotbench_evaluations_total":
		pc.evaluations.WithLabelValues(labels["outcome"]).Add(value)
	default:
		pc.otherCounters.WithLabelValues(metric).Add(value)
	}
}

// RecordLatency records an operation duration.
func (pc *PrometheusCollector) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	switch operation {
	case "hotbench_evaluation_seconds":
		pc.judgeLatency.WithLabelValues(labels["judge"]).Observe(duration.Seconds())
	case "llm_latency_seconds":
		pc.llmLatency.WithLabelValues(
			labels["provider"], labels["model"], labels["status"],
		).Observe(duration.Seconds())
	default:
		pc.otherHistogram.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

// RecordHistogram records a raw value in the histogram matching the
// metric name.
func (pc *PrometheusCollector) RecordHistogram(metric string, value float64, labels map[string]string) {
	switch metric {
	case "llm_latency_seconds":
		pc.llmLatency.WithLabelValues(
			labels["provider"], labels["model"], labels["status"],
		).Observe(value)
	default:
		pc.otherHistogram.WithLabelValues(metric).Observe(value)
	}
}
