// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/drywaters/textsum/internal/bridge"
)

// Summarize outcomes
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotReady = "not_ready"
	OutcomeFailed   = "failed"
)

var (
	summarizeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsum_summarize_requests_total",
			Help: "Total number of summarize requests by outcome",
		},
		[]string{"outcome"},
	)

	// Buckets run long because model latency is not bounded by the server.
	summarizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_summarize_duration_seconds",
			Help:    "Time spent waiting on the summarization capability",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	bridgeState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "textsum_bridge_state",
			Help: "Summarizer bridge state (0=uninitialized, 1=loading, 2=ready, 3=failed)",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsum_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textsum_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)
)

// RecordSummarize counts one summarize request
func RecordSummarize(outcome string) {
	summarizeRequests.WithLabelValues(outcome).Inc()
}

// ObserveSummarizeDuration records how long the capability call took
func ObserveSummarizeDuration(d time.Duration) {
	summarizeDuration.Observe(d.Seconds())
}

// SetBridgeState is a bridge state hook
func SetBridgeState(s bridge.State) {
	bridgeState.Set(float64(s))
}

// ObserveHTTP records a finished HTTP request
func ObserveHTTP(method, route, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
