// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_api_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raidprogress_api_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "raidprogress_api_active_requests",
			Help: "Number of in-flight HTTP API requests",
		},
	)

	// Upstream Metrics (Raider.io and Blizzard)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_upstream_requests_total",
			Help: "Total number of upstream HTTP calls by outcome",
		},
		[]string{"upstream", "endpoint", "outcome"}, // outcome: ok, connection, http_4xx, http_5xx, rate_limited
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raidprogress_upstream_request_duration_seconds",
			Help:    "Latency of upstream HTTP calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"upstream"},
	)

	// Cache Metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_cache_operations_total",
			Help: "Cache lookups and writes by namespace and result",
		},
		[]string{"backend", "operation", "result"}, // result: hit, miss, ok, error
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "raidprogress_cache_entries",
			Help: "Live entries in the cache store",
		},
		[]string{"backend"},
	)

	NegativeCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_negative_cache_hits_total",
			Help: "Upstream calls suppressed by a cached error",
		},
		[]string{"kind"},
	)

	// Token Metrics
	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_oauth_token_refreshes_total",
			Help: "OAuth client-credentials exchanges by region and result",
		},
		[]string{"region", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Aggregation Metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_resolutions_total",
			Help: "Progress resolutions by requested mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: resolved, partial, error
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "raidprogress_resolution_duration_seconds",
			Help:    "Wall-clock time of a full progress resolution",
			Buckets: prometheus.DefBuckets,
		},
	)

	TierFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_tier_fallbacks_total",
			Help: "Explicit-tier requests served from a lower tier",
		},
		[]string{"requested", "used"},
	)

	// Icon Metrics
	IconResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidprogress_icon_resolutions_total",
			Help: "Icon lookups by kind and the step that answered",
		},
		[]string{"kind", "source"}, // source: cache, blob_store, download, unavailable, error
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstream records one upstream call.
func RecordUpstream(upstream, endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(upstream, endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperations.WithLabelValues(backend, "get", result).Inc()
}

// RecordCacheWrite records a cache write.
func RecordCacheWrite(backend string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CacheOperations.WithLabelValues(backend, "set", result).Inc()
}

// RecordResolution records a completed progress resolution.
func RecordResolution(mode, outcome string, duration time.Duration) {
	ResolutionsTotal.WithLabelValues(mode, outcome).Inc()
	ResolutionDuration.Observe(duration.Seconds())
}
