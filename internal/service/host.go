package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostProbe reads host utilisation as percentages.
type HostProbe interface {
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	RAMPercent(ctx context.Context) (float64, error)
}

type gopsutilProbe struct{}

// NewHostProbe returns a probe backed by gopsutil.
func NewHostProbe() HostProbe { return gopsutilProbe{} }

func (gopsutilProbe) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, errors.New("no cpu samples")
	}
	return round1(pct[0]), nil
}

func (gopsutilProbe) RAMPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return round1(vm.UsedPercent), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
