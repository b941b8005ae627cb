package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/4shenafi/alx-travel-app-0x02/internal/metrics"
)

// Metrics records per-route request counts and latency. The route template
// (c.FullPath) keeps label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
