package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/princeprakhar/device-catalog/pkg/logger"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

// Metrics records request counts and latencies per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := routeOf(c)
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RequestLogger writes one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"route":     routeOf(c),
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}
		if id := c.GetString("user_id"); id != "" {
			fields["user_id"] = id
		}
		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request served")
		}
	}
}
