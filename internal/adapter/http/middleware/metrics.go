package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskapi/internal/core/port"
	"taskapi/internal/core/telemetry"
)

// MetricsMiddleware records request counts and latency by route template, so
// /api/tasks/:id is one series regardless of the id.
func MetricsMiddleware(metrics *telemetry.AppMetrics, probe port.Telemetry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		if metrics != nil {
			metrics.IncrementActiveConnections(ctx)
			defer metrics.DecrementActiveConnections(ctx)
		}

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = "unmatched"
		}

		probe.RecordHTTPOperation(ctx, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
