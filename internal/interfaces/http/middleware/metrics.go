package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"projecthub.backend/internal/metrics"
)

// MetricsMiddleware records request counters and latency per route.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
