// Package monitoring exposes Prometheus metrics for the HTTP layer and the
// aggregation fan-out.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// FetchFailures counts record store reads that failed or timed out while
	// building an aggregate view. The view is still served, degraded.
	FetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifetrack_fetch_failures_total",
			Help: "Record store fetches that failed during aggregation",
		},
		[]string{"view", "source"},
	)

	// AggregationDuration measures a whole dashboard or calendar build.
	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifetrack_aggregation_duration_seconds",
			Help:    "Time to fetch and aggregate one view",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 3},
		},
		[]string{"view"},
	)
)

// Init registers every collector with the default registry.
func Init() {
	prometheus.MustRegister(RequestCounter, RequestDuration, FetchFailures, AggregationDuration)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
