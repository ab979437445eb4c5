package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mask_monitor"
	"mask_monitor/internal/inference"
	"mask_monitor/internal/metrics"
	"mask_monitor/internal/repository"
)

// ErrNoUpload means the request carried no image to run detection on.
var ErrNoUpload = errors.New("no file uploaded")

type DetectionService struct {
	model Inferer
	repo  repository.DetectionRepo
	obs   Observer
	now   func() time.Time
}

func NewDetectionService(model Inferer, repo repository.DetectionRepo, obs Observer, now func() time.Time) *DetectionService {
	if obs == nil {
		obs = nopObserver{}
	}
	if now == nil {
		now = time.Now
	}
	return &DetectionService{model: model, repo: repo, obs: obs, now: now}
}

// Detect runs inference over raw and appends one log entry per detection,
// all stamped with the same local timestamp. The log is untouched when
// inference fails.
func (s *DetectionService) Detect(ctx context.Context, raw []byte) ([]mask_monitor.Detection, error) {
	start := time.Now()
	dets, err := s.model.Infer(ctx, raw)
	s.obs.ObserveInference(time.Since(start))
	if err != nil {
		if inference.IsDecodeError(err) {
			s.obs.InferenceFailed(metrics.FailureDecode)
		} else {
			s.obs.InferenceFailed(metrics.FailureModel)
		}
		return nil, err
	}

	if len(dets) == 0 {
		return dets, nil
	}

	ts := s.now().Local().Format(mask_monitor.TimestampLayout)
	entries := make([]mask_monitor.LogEntry, 0, len(dets))
	for _, d := range dets {
		entries = append(entries, mask_monitor.LogEntry{
			Timestamp:  ts,
			Label:      d.Label,
			Confidence: d.Confidence,
		})
	}
	if err := s.repo.Append(ctx, entries...); err != nil {
		return nil, fmt.Errorf("append detection log: %w", err)
	}
	for _, e := range entries {
		s.obs.DetectionLogged(e.Label)
	}
	return dets, nil
}
