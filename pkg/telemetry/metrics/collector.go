// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry and every metric the service
// records. All components record through it, so metric names and labels
// stay in one place.
type Collector struct {
	registry *prometheus.Registry

	// HTTP surface
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	// Rate limiting
	rateLimitDenials prometheus.Counter
	trackedKeys      prometheus.Gauge

	// Upstream gateway
	gatewayRequests *prometheus.CounterVec
	gatewayDuration prometheus.Histogram
}

// NewCollector creates a collector with its own registry. If registry is
// nil a fresh one is used, keeping the service's metrics separate from
// anything registered globally.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ideaforge",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ideaforge",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			// Generation requests are dominated by the upstream model call,
			// so the buckets reach well past typical API latencies.
			Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"route"}),
		rateLimitDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ideaforge",
			Name:      "ratelimit_denials_total",
			Help:      "Requests denied by the per-caller rate limiter.",
		}),
		trackedKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ideaforge",
			Name:      "ratelimit_tracked_keys",
			Help:      "Caller keys currently tracked by the rate limiter.",
		}),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ideaforge",
			Name:      "gateway_requests_total",
			Help:      "Completion requests sent upstream, by outcome.",
		}, []string{"outcome"}),
		gatewayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ideaforge",
			Name:      "gateway_request_duration_seconds",
			Help:      "Latency of upstream completion requests.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.rateLimitDenials,
		c.trackedKeys,
		c.gatewayRequests,
		c.gatewayDuration,
	)

	return c
}

// RecordRequest records one served HTTP request. Safe on a nil collector
// so callers without metrics wired can skip the nil checks.
func (c *Collector) RecordRequest(route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordRateLimitDenial records one request rejected by the limiter.
func (c *Collector) RecordRateLimitDenial() {
	if c == nil {
		return
	}
	c.rateLimitDenials.Inc()
}

// SetTrackedKeys updates the tracked caller-key gauge. The sweeper calls
// this after every sweep.
func (c *Collector) SetTrackedKeys(n int) {
	if c == nil {
		return
	}
	c.trackedKeys.Set(float64(n))
}

// RecordGatewayRequest records one upstream completion attempt. Outcome
// is "success", "rate_limited", "quota", "upstream_error", "transport_error"
// or "parse_error".
func (c *Collector) RecordGatewayRequest(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.gatewayRequests.WithLabelValues(outcome).Inc()
	c.gatewayDuration.Observe(duration.Seconds())
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
