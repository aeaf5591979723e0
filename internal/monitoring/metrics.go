package monitoring

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lews"

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	assessments       *prometheus.CounterVec
	trajectoryLookups *prometheus.CounterVec
	cacheRequests     *prometheus.CounterVec
	rateLimitBlocked  prometheus.Counter
	rateLimitFallback prometheus.Counter

	requestCount int64
	errorCount   int64
	StartTime    time.Time
}

// NewMetrics registers all collectors on a fresh registry, so several
// instances can coexist in tests
func NewMetrics() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		StartTime: time.Now(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed assessments by strategy, stage and intervention window.",
		}, []string{"strategy", "stage", "window"}),
		trajectoryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trajectory_lookups_total",
			Help:      "Trajectory lookups by result.",
		}, []string{"result"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		rateLimitBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_blocked_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		rateLimitFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_fallback_total",
			Help:      "Rate limit decisions served by the in-memory limiter after a Redis error.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.assessments,
		m.trajectoryLookups,
		m.cacheRequests,
		m.rateLimitBlocked,
		m.rateLimitFallback,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest records one finished HTTP request
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	atomic.AddInt64(&m.requestCount, 1)
	if status >= 400 {
		atomic.AddInt64(&m.errorCount, 1)
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAssessment counts one assessment outcome
func (m *Metrics) RecordAssessment(strategy, stage, window string) {
	m.assessments.WithLabelValues(strategy, stage, window).Inc()
}

// RecordTrajectoryLookup counts a lookup as found, species_missing or technology_missing
func (m *Metrics) RecordTrajectoryLookup(result string) {
	m.trajectoryLookups.WithLabelValues(result).Inc()
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	m.cacheRequests.WithLabelValues("miss").Inc()
}

// IncrementRateLimitBlock counts a rejected request
func (m *Metrics) IncrementRateLimitBlock() {
	m.rateLimitBlocked.Inc()
}

// IncrementRateLimitFallback counts a decision made without Redis
func (m *Metrics) IncrementRateLimitFallback() {
	m.rateLimitFallback.Inc()
}

// GetStats returns a small summary for the health endpoint
func (m *Metrics) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.StartTime).Seconds()),
		"request_count":  atomic.LoadInt64(&m.requestCount),
		"error_count":    atomic.LoadInt64(&m.errorCount),
	}
}
