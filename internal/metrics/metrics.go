package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claimcheck_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Pipeline metrics
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_verifications_total",
			Help: "Completed verifications by final status",
		},
		[]string{"status", "cached"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_cache_lookups_total",
			Help: "Verification cache lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss, error
	)

	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimcheck_source_fetches_total",
			Help: "External evidence fetches by source and outcome",
		},
		[]string{"source", "outcome"}, // ok, no_data
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claimcheck_model_call_duration_seconds",
			Help:    "Language model call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 45},
		},
		[]string{"call"}, // classify, verify
	)
)

// FetchOutcome maps a tagged fetch result to a metric label
func FetchOutcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "no_data"
}
