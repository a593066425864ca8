// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opsdash_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StatsRecomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_stats_recomputations_total",
			Help: "User counter recomputations by result",
		},
		[]string{"result"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_cache_lookups_total",
			Help: "Cache lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_job_runs_total",
			Help: "Background job runs by job and result",
		},
		[]string{"job", "result"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opsdash_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
