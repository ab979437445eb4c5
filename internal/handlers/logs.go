package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"mask_monitor"
	"mask_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	csvContentType    = "text/csv"
	exportDisposition = "attachment; filename=detection_log.csv"
)

// @Summary      Recent detections
// @Description  Total log size and the most recent entries, oldest first.
// @Tags         logs
// @Produce      json
// @Success      200  {object}  service.LogPage
// @Failure      500  {object}  map[string]string
// @Router       /detections/log [get]
func (h *Handler) getLogs(c *gin.Context) {
	page, err := h.services.DetectionLog.Recent(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadLogs, "logs_list_failed", err)
		return
	}
	if page.Logs == nil {
		page.Logs = []mask_monitor.LogEntry{}
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Export detection log
// @Description  The whole log as CSV with header timestamp,label,confidence.
// @Tags         logs
// @Produce      text/csv
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportLogs(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.services.DetectionLog.Export(c.Request.Context(), &buf); err != nil {
		if errors.Is(err, service.ErrEmptyLog) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyLog})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errExportLogs, "logs_export_failed", err)
		return
	}
	c.Header("Content-Disposition", exportDisposition)
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}
