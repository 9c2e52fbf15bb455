package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/logger"
)

// RequestLogger logs one line per request, leveled by response status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("Middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			requestLog.Error("request failed", fields...)
		case status >= 400:
			requestLog.Warn("request rejected", fields...)
		default:
			requestLog.Info("request", fields...)
		}
	}
}
