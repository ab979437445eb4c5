package mask_monitor

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the local, second-precision layout of LogEntry timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Detection is one labeled bounding box produced by a single inference call.
type Detection struct {
	Label      string     `json:"label" example:"with_mask"`
	Confidence float64    `json:"confidence" example:"0.93"` // [0,1]
	BBox       [4]float64 `json:"bbox"`                      // x1, y1, x2, y2
}

// LogEntry is a timestamped record of one past detection.
// Field order is the CSV column order of the export.
type LogEntry struct {
	Timestamp  string  `json:"timestamp" example:"2025-08-27 15:04:05"`
	Label      string  `json:"label" example:"without_mask"`
	Confidence float64 `json:"confidence" example:"0.87"`
}

// MuteState is the alert-suppression window.
type MuteState struct {
	Active bool       `json:"active"`
	Until  *time.Time `json:"-"`
}

// MarshalJSON renders Until as an RFC 3339 timestamp with second
// precision, or null when no window is set.
func (m MuteState) MarshalJSON() ([]byte, error) {
	var until *string
	if m.Until != nil {
		s := m.Until.Format(time.RFC3339)
		until = &s
	}
	return json.Marshal(struct {
		Active bool    `json:"active"`
		Until  *string `json:"until"`
	}{m.Active, until})
}

// Summary holds per-category counts over the detection log.
type Summary struct {
	WithMask  int `json:"with_mask"`
	NoMask    int `json:"no_mask"`
	Incorrect int `json:"incorrect"`
}

// Status is a snapshot of process and host health.
type Status struct {
	Uptime           int64   `json:"uptime"` // seconds
	CPU              float64 `json:"cpu"`    // percent
	RAM              float64 `json:"ram"`    // percent
	Model            string  `json:"model"`
	DetectionsLogged int     `json:"detections_logged"`
}
