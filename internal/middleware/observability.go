package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/med-directory/internal/metrics"
)

const (
	HeaderRequestID    = "X-Request-ID"
	ContextRequestID   = "requestID"
	unmatchedRoutePath = "unmatched"
)

// RequestID echoes or assigns X-Request-ID and logs each finished request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(ContextRequestID, reqID)
		c.Header(HeaderRequestID, reqID)

		start := time.Now()
		c.Next()

		slog.Default().Info("request finished",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Metrics labels requests by route template so ids never become labels.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoutePath
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.
			WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(method, path).
			Observe(time.Since(start).Seconds())
	}
}
