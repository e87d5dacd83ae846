// Package metrics provides Prometheus metrics for the advisor service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec
	LLMRetriesTotal    *prometheus.CounterVec

	// Graph metrics
	GraphQueriesTotal       *prometheus.CounterVec
	GraphQueryDurationSecs  *prometheus.HistogramVec
	CatalogCacheHitsTotal   prometheus.Counter
	CatalogCacheMissesTotal prometheus.Counter

	// Degradation metrics
	FallbackResponsesTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_chat_requests_total",
				Help: "Total number of chat requests by intent and status",
			},
			[]string{"intent", "status"}, // status: ok, degraded, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_chat_duration_seconds",
				Help:    "End-to-end chat turn duration in seconds by intent",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"intent"},
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_llm_requests_total",
				Help: "Total number of LLM completion requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, timeout
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_llm_duration_seconds",
				Help:    "LLM completion request duration in seconds by provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		LLMRetriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_llm_retries_total",
				Help: "Total number of LLM retry attempts by provider",
			},
			[]string{"provider"},
		),

		GraphQueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_graph_queries_total",
				Help: "Total number of graph queries by operation and status",
			},
			[]string{"operation", "status"}, // status: success, error, timeout, not_found
		),

		GraphQueryDurationSecs: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_graph_query_duration_seconds",
				Help:    "Graph query duration in seconds by operation",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"operation"},
		),

		CatalogCacheHitsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "advisor_catalog_cache_hits_total",
				Help: "Total number of catalog digest cache hits",
			},
		),

		CatalogCacheMissesTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "advisor_catalog_cache_misses_total",
				Help: "Total number of catalog digest cache misses",
			},
		),

		FallbackResponsesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_fallback_responses_total",
				Help: "Total number of deterministic fallback responses by intent and reason",
			},
			[]string{"intent", "reason"}, // reason: llm_error, short_output, graph_error, no_code
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter"}, // limiter: client, llm
		),
	}

	return m
}

// RecordChatRequest records a completed chat turn.
func (m *Metrics) RecordChatRequest(intent, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ChatRequestsTotal.WithLabelValues(intent, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordLLMRequest records an LLM completion attempt.
func (m *Metrics) RecordLLMRequest(provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordLLMRetry records an LLM retry attempt.
func (m *Metrics) RecordLLMRetry(provider string) {
	if m == nil {
		return
	}
	m.LLMRetriesTotal.WithLabelValues(provider).Inc()
}

// RecordGraphQuery records a graph query.
func (m *Metrics) RecordGraphQuery(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.GraphQueriesTotal.WithLabelValues(operation, status).Inc()
	m.GraphQueryDurationSecs.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogCacheHit records a catalog digest cache hit.
func (m *Metrics) RecordCatalogCacheHit() {
	if m == nil {
		return
	}
	m.CatalogCacheHitsTotal.Inc()
}

// RecordCatalogCacheMiss records a catalog digest cache miss.
func (m *Metrics) RecordCatalogCacheMiss() {
	if m == nil {
		return
	}
	m.CatalogCacheMissesTotal.Inc()
}

// RecordFallbackResponse records a deterministic fallback response.
func (m *Metrics) RecordFallbackResponse(intent, reason string) {
	if m == nil {
		return
	}
	m.FallbackResponsesTotal.WithLabelValues(intent, reason).Inc()
}

// RecordRateLimiterDrop records a dropped request.
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	if m == nil {
		return
	}
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}
