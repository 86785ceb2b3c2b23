// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "games_api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// FacetQueriesTotal counts batched facet lookups, one per kind and batch.
	FacetQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_api_facet_queries_total",
			Help: "Total number of batched facet name queries",
		},
		[]string{"kind"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_api_cache_lookups_total",
			Help: "Query cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)
