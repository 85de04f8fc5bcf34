package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line when it completes.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("request_id", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if uid := c.GetString(UserIDKey); uid != "" {
			fields = append(fields, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.ErrorContext(c.Request.Context(), "request failed", fields...)
		case status >= 400:
			logger.WarnContext(c.Request.Context(), "request rejected", fields...)
		default:
			logger.InfoContext(c.Request.Context(), "request served", fields...)
		}
	}
}
