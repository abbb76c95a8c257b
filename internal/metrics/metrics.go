package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_upstream_requests_total",
			Help: "Total number of requests forwarded to the generation API",
		},
		[]string{"outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_upstream_request_duration_seconds",
			Help:    "Duration of generation API round trips in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)
)

// Upstream request outcomes.
const (
	OutcomeRelayed      = "relayed"
	OutcomeNetworkError = "network_error"
	OutcomeInvalidBody  = "invalid_body"
)
