package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var errMuteNoDeadline = errors.New("mute returned no deadline")

// MuteResponse is the body of a successful POST /mute/.
type MuteResponse struct {
	Message string `json:"message" example:"Alerts muted for 5 minutes"`
	Until   string `json:"until" example:"2025-08-27T15:09:05+02:00"`
}

// @Summary      Mute alerts
// @Description  Suppresses alerts for one window. Muting again restarts the window.
// @Tags         mute
// @Produce      json
// @Success      200  {object}  MuteResponse
// @Failure      500  {object}  map[string]string
// @Router       /mute/ [post]
func (h *Handler) mute(c *gin.Context) {
	st, err := h.services.Mute.Mute(c.Request.Context())
	if err == nil && st.Until == nil {
		err = errMuteNoDeadline
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errMuteFailed, "mute_failed", err)
		return
	}
	c.JSON(http.StatusOK, MuteResponse{
		Message: "Alerts muted for " + humanWindow(h.services.Mute.Window()),
		Until:   st.Until.Format(time.RFC3339),
	})
}

// @Summary      Mute status
// @Description  Reports whether alerts are muted. An elapsed window is cleared on read.
// @Tags         mute
// @Produce      json
// @Success      200  {object}  mask_monitor.MuteState
// @Failure      500  {object}  map[string]string
// @Router       /mute/status [get]
func (h *Handler) muteStatus(c *gin.Context) {
	st, err := h.services.Mute.Status(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errMuteStatus, "mute_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// humanWindow renders whole minutes as "5 minutes" and anything else as a Go duration.
func humanWindow(d time.Duration) string {
	if d <= 0 || d%time.Minute != 0 {
		return d.String()
	}
	n := int(d / time.Minute)
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}
