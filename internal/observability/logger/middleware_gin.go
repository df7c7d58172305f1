// Package logger provides request logging middleware.
package logger

import (
	"time"

	"github.com/btcforcorps/orangepages/pkg/telemetry/correlation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const correlationHeader = "X-Correlation-Id"

// GinMiddleware logs each request with zap after the handler chain completes.
// It also stamps a correlation ID onto the request context and echoes it in
// the response so clients can quote it when reporting problems.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		ctx := correlation.WithContext(c.Request.Context(), c.GetHeader(correlationHeader))
		ctx, cid := correlation.Ensure(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(correlationHeader, cid)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("correlation_id", cid),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
