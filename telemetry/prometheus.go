// Package telemetry provides Prometheus metrics collection for the bridge
// HTTP service. It includes middleware for HTTP request tracking and gauges
// over the session store.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds the Prometheus collectors of the bridge.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SessionsActive      prometheus.GaugeFunc
}

// NewMetrics creates a Metrics instance with its own registry, registering
// the Go and process collectors alongside the bridge metrics. sessionCount
// reports the current size of the session store.
func NewMetrics(sessionCount func() float64) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_http_requests_total",
			Help: "Total number of HTTP requests processed by the bridge.",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_http_request_duration_seconds",
			Help:    "Latency of HTTP requests processed by the bridge.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	sessionsActive := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "bridge_sessions_active",
			Help: "Number of teacher sessions currently held in the store.",
		},
		sessionCount,
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		sessionsActive,
	)

	return &Metrics{
		registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		SessionsActive:      sessionsActive,
	}
}

// HTTPMiddleware wraps a fasthttp handler to collect request metrics:
// total count, duration, method, path and status code.
func (m *Metrics) HTTPMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		handler(ctx)

		duration := time.Since(start).Seconds()
		path := string(ctx.Path())
		method := string(ctx.Method())
		status := strconv.Itoa(ctx.Response.StatusCode())

		m.HTTPRequestsTotal.WithLabelValues(path, method, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(path, method, status).Observe(duration)
	}
}

// ExpositionHandler returns the fasthttp handler serving the /metrics
// endpoint from this instance's registry.
func (m *Metrics) ExpositionHandler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}),
	)
}
