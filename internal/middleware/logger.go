package middleware

import (
	"time"

	"hostel-be-svc/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs every request with method, path, status and latency
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			log.WithFields(fields).Error(c.Errors.String())
			return
		}

		if c.Writer.Status() >= 500 {
			log.WithFields(fields).Error("Request failed")
		} else {
			log.WithFields(fields).Info("Request completed")
		}
	}
}
