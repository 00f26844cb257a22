package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

// RequestLogger logs one line per request; server errors log at error level.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			reqLog.Error("Request failed", fields...)
		case status >= 400:
			reqLog.Warn("Request rejected", fields...)
		default:
			reqLog.Info("Request completed", fields...)
		}
	}
}
