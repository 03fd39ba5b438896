package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the booking API.
type Metrics struct {
	registry *prometheus.Registry

	ReservationsCreated   prometheus.Counter
	ReservationsCancelled prometheus.Counter
	ReservationsRejected  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagepass_reservations_created_total",
			Help: "Number of reservations successfully created.",
		}),
		ReservationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagepass_reservations_cancelled_total",
			Help: "Number of reservations cancelled.",
		}),
		ReservationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stagepass_reservations_rejected_total",
			Help: "Number of reservation operations rejected, by reason.",
		}, []string{"reason"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stagepass_http_requests_total",
			Help: "Number of HTTP requests, by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stagepass_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Use the route template, not the raw URL, to keep cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
