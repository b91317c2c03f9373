// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RelayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_relay_requests_total",
			Help: "Total number of relayed generation requests by upstream status code",
		},
		[]string{"status"},
	)

	RelayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_relay_duration_seconds",
			Help:    "Time from relay receipt to upstream response headers",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
	)

	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_fetch_total",
			Help: "Total number of recommendation fetches by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_dropped_total",
			Help: "Recommendations removed by the QS rank filter",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_http_requests_total",
			Help: "Total number of HTTP requests served by method and status code",
		},
		[]string{"method", "status"},
	)
)

// Fetch outcomes recorded on FetchTotal.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeUpstream  = "upstream_error"
	OutcomeParse     = "parse_error"
	OutcomeTransport = "transport_error"
)
