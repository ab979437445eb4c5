package handlers

import (
	"errors"
	"io"
	"net/http"

	"mask_monitor"
	"mask_monitor/internal/inference"
	"mask_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// DetectResponse is the body of a successful POST /detect/.
type DetectResponse struct {
	Detections []mask_monitor.Detection `json:"detections"`
}

// @Summary      Detect masks
// @Description  Runs the model over one uploaded image and logs every detection.
// @Tags         detection
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image (JPEG, PNG, GIF, BMP, TIFF or WebP)"
// @Success      200   {object}  DetectResponse
// @Failure      400   {object}  map[string]string
// @Failure      413   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /detect/ [post]
func (h *Handler) detect(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	raw, err := readUpload(c)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			h.logAndJSONError(c, http.StatusRequestEntityTooLarge, errUploadTooBig, "detect_upload_too_large", err)
		case errors.Is(err, service.ErrNoUpload):
			h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "detect_no_upload", err)
		default:
			h.logAndJSONError(c, http.StatusBadRequest, errUploadInvalid, "detect_upload_invalid", err)
		}
		return
	}

	dets, err := h.services.Detection.Detect(c.Request.Context(), raw)
	if err != nil {
		if inference.IsDecodeError(err) {
			h.logAndJSONError(c, http.StatusBadRequest, errInvalidImage, "detect_decode_failed", err, "bytes", len(raw))
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDetectFailed, "detect_failed", err)
		return
	}
	if dets == nil {
		dets = []mask_monitor.Detection{}
	}
	if h.log != nil {
		h.log.Debugw("detect_ok", "request_id", requestID(c), "detections", len(dets))
	}
	c.JSON(http.StatusOK, DetectResponse{Detections: dets})
}

func readUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, err
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, service.ErrNoUpload
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
