// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petspotter_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petspotter_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// AuthAttempts counts register/login attempts.
	// Labels:
	//   - operation: "register", "login"
	//   - outcome: "success", "invalid", "duplicate", "rejected"
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petspotter_auth_attempts_total",
			Help: "Total number of registration and login attempts",
		},
		[]string{"operation", "outcome"},
	)

	// ListingQueries counts listing reads by filter dialect and the dimension honored.
	ListingQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petspotter_listing_queries_total",
			Help: "Total number of listing queries by filter dimension",
		},
		[]string{"dialect", "dimension"},
	)

	ListingCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petspotter_listing_cache_results_total",
			Help: "Listing cache lookups by result",
		},
		[]string{"result"},
	)

	StoreReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petspotter_store_ready",
			Help: "1 when the backing store connection is ready, 0 otherwise",
		},
	)
)
