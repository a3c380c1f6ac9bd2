package web

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinemap/internal/logging"
	"cinemap/internal/services"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with a correlation id and logs its outcome.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		status := c.Writer.Status()
		attrs := []logging.Attr{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("latency", time.Since(start)),
			logging.String(logging.FieldCorrelationID, requestID),
		}
		switch {
		case status >= 500:
			logger.Error("request failed", logging.Args(attrs...)...)
		default:
			logger.Debug("request served", logging.Args(attrs...)...)
		}
	}
}
