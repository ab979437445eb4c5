package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Service status
// @Description  Uptime, host CPU and RAM, model name and total logged detections. Blocks ~200ms while sampling CPU.
// @Tags         system
// @Produce      json
// @Success      200  {object}  mask_monitor.Status
// @Failure      500  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errHostMetrics, "status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Detection summary
// @Description  Counts of logged detections per mask category.
// @Tags         detection
// @Produce      json
// @Success      200  {object}  mask_monitor.Summary
// @Failure      500  {object}  map[string]string
// @Router       /summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	sum, err := h.services.Summary.Summarize(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSummary, "summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
