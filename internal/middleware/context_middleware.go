package middleware

import (
	"time"

	"hris-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger runs after RequestID. It stores a request scoped logger in the
// request context for services and writes one access log line per request.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	base := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		reqLogger := base.With(zap.String("request_id", contextutil.GetRequestID(ctx)))
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		c.Next()

		// auth middlewares may have enriched the logger further down the chain
		l := contextutil.GetLogger(c.Request.Context(), reqLogger)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			l.Error("request", fields...)
		case status >= 400:
			l.Warn("request", fields...)
		default:
			l.Info("request", fields...)
		}
	}
}
