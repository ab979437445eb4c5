package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"mask_monitor"
	"mask_monitor/internal/repository"
)

// cpuSampleInterval matches the short blocking sample of the status probe.
const cpuSampleInterval = 200 * time.Millisecond

type MonitoringService struct {
	repo    repository.DetectionRepo
	host    HostProbe
	model   string
	now     func() time.Time
	started time.Time
}

// NewMonitoringService starts the uptime clock at construction.
func NewMonitoringService(repo repository.DetectionRepo, host HostProbe, model string, now func() time.Time) *MonitoringService {
	if now == nil {
		now = time.Now
	}
	return &MonitoringService{repo: repo, host: host, model: model, now: now, started: now()}
}

// GetStatus samples CPU over a short interval, so it blocks for ~200ms.
func (s *MonitoringService) GetStatus(ctx context.Context) (mask_monitor.Status, error) {
	cpu, err := s.host.CPUPercent(ctx, cpuSampleInterval)
	if err != nil {
		return mask_monitor.Status{}, fmt.Errorf("sample cpu: %w", err)
	}
	ram, err := s.host.RAMPercent(ctx)
	if err != nil {
		return mask_monitor.Status{}, fmt.Errorf("read memory: %w", err)
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return mask_monitor.Status{}, fmt.Errorf("count detections: %w", err)
	}
	return mask_monitor.Status{
		Uptime:           int64(math.Round(s.now().Sub(s.started).Seconds())),
		CPU:              cpu,
		RAM:              ram,
		Model:            s.model,
		DetectionsLogged: n,
	}, nil
}
