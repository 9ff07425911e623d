// Package metrics defines the Prometheus instruments exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tabsplit_request_duration_seconds",
			Help:    "Total time taken for requests in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120, 180},
		},
		[]string{"method", "path", "status"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tabsplit_inference_duration_seconds",
			Help:    "Time spent waiting on the inference provider in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120, 180},
		},
		[]string{"model", "operation"},
	)

	InferenceCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabsplit_inference_count_total",
			Help: "Total number of inference calls made",
		},
		[]string{"model", "operation", "status"},
	)

	SettlementResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabsplit_settlement_results_total",
			Help: "Settlement verdicts per provider",
		},
		[]string{"provider", "result"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabsplit_receipt_cache_hits_total",
			Help: "Receipt cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	InflightRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tabsplit_inflight_requests",
			Help: "Current inflight requests",
		},
		[]string{"path"},
	)
)
