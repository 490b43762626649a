package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "synx_http_requests_total",
		Help: "HTTP requests by method, route, and status.",
	}, []string{"method", "path", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synx_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// StreamFragmentsTotal counts SSE records written to chat streams
	StreamFragmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "synx_stream_fragments_total",
		Help: "SSE records written across all chat streams.",
	})

	// StreamTurnsTotal counts completed chat turns by outcome
	StreamTurnsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "synx_stream_turns_total",
		Help: "Chat turns by outcome (done or error).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, StreamFragmentsTotal, StreamTurnsTotal)
}

// MetricsMiddleware records per-request counters and latency
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		timer := prometheus.NewTimer(requestDuration.WithLabelValues(c.Request.Method, path))
		c.Next()
		timer.ObserveDuration()

		requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// MetricsHandler serves the Prometheus scrape endpoint
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
