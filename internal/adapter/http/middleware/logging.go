package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskapi/pkg/config"
	"taskapi/pkg/tracing"
)

// LoggingMiddleware writes one structured line per request.
func LoggingMiddleware(logger *config.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		ctx := c.Request.Context()
		current := GetCurrent(c)
		requestID, _ := current.GetString("request_id")

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", requestID),
			zap.String("trace_id", tracing.TraceID(ctx)),
			zap.String("span_id", tracing.SpanID(ctx)),
		}

		if userID, ok := current.GetUUID("user_id"); ok {
			fields = append(fields, zap.String("user_id", userID.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.ErrorWithTrace(ctx, "HTTP Request", fields...)
		case status >= 400:
			logger.WarnWithTrace(ctx, "HTTP Request", fields...)
		default:
			logger.InfoWithTrace(ctx, "HTTP Request", fields...)
		}
	}
}
