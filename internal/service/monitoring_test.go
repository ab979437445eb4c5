package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mask_monitor"
	"mask_monitor/internal/repository"
)

type stubHost struct {
	cpu, ram     float64
	cpuErr       error
	ramErr       error
	lastInterval time.Duration
}

func (h *stubHost) CPUPercent(_ context.Context, interval time.Duration) (float64, error) {
	h.lastInterval = interval
	return h.cpu, h.cpuErr
}

func (h *stubHost) RAMPercent(context.Context) (float64, error) { return h.ram, h.ramErr }

func TestMonitoringService_GetStatus(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	repo := repository.NewDetectionMemory()
	_ = repo.Append(context.Background(), mask_monitor.LogEntry{Label: "a"}, mask_monitor.LogEntry{Label: "b"})
	host := &stubHost{cpu: 12.5, ram: 40.1}

	svc := NewMonitoringService(repo, host, "mask_v7.onnx", clock)
	now = start.Add(90*time.Second + 600*time.Millisecond)

	st, err := svc.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	want := mask_monitor.Status{Uptime: 91, CPU: 12.5, RAM: 40.1, Model: "mask_v7.onnx", DetectionsLogged: 2}
	if st != want {
		t.Fatalf("got %+v, want %+v", st, want)
	}
	if host.lastInterval != cpuSampleInterval {
		t.Fatalf("cpu sampled over %v", host.lastInterval)
	}
}

func TestMonitoringService_ErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cases := []struct {
		name string
		host *stubHost
		repo repository.DetectionRepo
	}{
		{"cpu", &stubHost{cpuErr: boom}, repository.NewDetectionMemory()},
		{"ram", &stubHost{ramErr: boom}, repository.NewDetectionMemory()},
		{"count", &stubHost{}, failingDetectionRepo{err: boom}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewMonitoringService(tc.repo, tc.host, "m", nil).GetStatus(context.Background())
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom, got %v", err)
			}
		})
	}
}
