// Package metrics registers the Prometheus collectors the service
// exposes at /metrics, grounded on noah-isme's internal/service
// MetricsService (its http_requests_total/duration pair, adapted here
// plus a solve-specific counter/histogram set instead of its
// cache/db ones, since this service has neither).
package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveDuration   prometheus.Histogram
	solveStatus     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Duration of /solve calls in seconds",
		Buckets: prometheus.DefBuckets,
	})

	solveStatus := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_status_total",
		Help: "Count of /solve results by solver status",
	}, []string{"status"})

	registry.MustRegister(requestDuration, requestTotal, solveDuration, solveStatus)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solveStatus:     solveStatus,
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Middleware observes request count/duration for every route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := statusLabel(c.Writer.Status())

		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration.Seconds())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// ObserveSolve records one /solve outcome for the solve-specific series.
func (m *Metrics) ObserveSolve(status string, duration time.Duration) {
	m.solveDuration.Observe(duration.Seconds())
	m.solveStatus.WithLabelValues(status).Inc()
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
