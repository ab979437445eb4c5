package service

import (
	"context"
	"io"
	"time"

	"mask_monitor"
	"mask_monitor/internal/logger"
	"mask_monitor/internal/repository"
)

// Detection runs the model over an upload and logs the result.
type Detection interface {
	Detect(ctx context.Context, raw []byte) ([]mask_monitor.Detection, error)
}

// Summary aggregates the detection log into mask categories.
type Summary interface {
	Summarize(ctx context.Context) (mask_monitor.Summary, error)
}

// Monitoring exposes process and host status.
type Monitoring interface {
	GetStatus(ctx context.Context) (mask_monitor.Status, error)
}

// DetectionLog exposes read access to the detection history.
type DetectionLog interface {
	Recent(ctx context.Context) (LogPage, error)
	Export(ctx context.Context, w io.Writer) error
}

// Mute is the manual alert override. Status is the only operation that
// evaluates expiry.
type Mute interface {
	Mute(ctx context.Context) (mask_monitor.MuteState, error)
	Status(ctx context.Context) (mask_monitor.MuteState, error)
	Window() time.Duration
}

// Service aggregates all sub-services and owns the shared state through
// the repositories it was built with.
type Service struct {
	Detection
	Summary
	Monitoring
	DetectionLog
	Mute
}

// NewService wires repositories and the model into concrete services.
func NewService(repos *repository.Repository, model Inferer, opts Options, log *logger.Logger) *Service {
	opts = opts.withDefaults()
	return &Service{
		Detection:    NewDetectionService(model, repos.Detections, opts.Observer, opts.Now),
		Summary:      NewSummaryService(repos.Detections),
		Monitoring:   NewMonitoringService(repos.Detections, opts.Host, model.ModelName(), opts.Now),
		DetectionLog: NewDetectionLogService(repos.Detections, opts.RecentLimit),
		Mute:         NewMuteService(repos.Mute, opts.MuteDuration, opts.Observer, opts.Now, log),
	}
}
