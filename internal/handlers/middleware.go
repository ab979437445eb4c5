package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
	unmatchedRoute  = "unmatched"
)

// requestMiddleware tags the request with an ID, then logs and counts it
// once the handler chain has finished.
func (h *Handler) requestMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)

	start := time.Now()
	c.Next()
	elapsed := time.Since(start)

	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	status := c.Writer.Status()

	if h.metrics != nil {
		h.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
	}
	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
		)
	}
}

// requestID returns the ID assigned by requestMiddleware, if any.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
