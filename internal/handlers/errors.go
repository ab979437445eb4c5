package handlers

import (
	"github.com/gin-gonic/gin"
)

// Client-facing error messages. Internal detail only goes to the log.
const (
	errInvalidImage  = "Invalid image data"
	errDetectFailed  = "Detection failed"
	errEmptyLog      = "No detections logged yet"
	errHostMetrics   = "failed to read host metrics"
	errLoadSummary   = "failed to load summary"
	errLoadLogs      = "failed to load logs"
	errExportLogs    = "failed to export logs"
	errMuteFailed    = "failed to mute alerts"
	errMuteStatus    = "failed to load mute status"
	errUploadTooBig  = "file too large"
	errUploadInvalid = "invalid upload"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", requestID(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
