package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/prometheus"
)

// Metrics records per-request counters and latency.  Paths are labeled with
// the route template so label cardinality stays bounded.
func Metrics(metrics *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPActiveRequests.WithLabelValues(c.Request.Method).Inc()
		started := time.Now()

		c.Next()

		metrics.HTTPActiveRequests.WithLabelValues(c.Request.Method).Dec()
		prometheus.RecordHTTPRequest(metrics, c.Request.Method, path, c.Writer.Status(), time.Since(started))
	}
}
