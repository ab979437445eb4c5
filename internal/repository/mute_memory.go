package repository

import (
	"context"
	"sync"
	"time"

	"mask_monitor"
)

type MuteMemory struct {
	mu    sync.Mutex
	state mask_monitor.MuteState
}

var _ MuteRepo = (*MuteMemory)(nil)

func NewMuteMemory() *MuteMemory {
	return &MuteMemory{}
}

func (r *MuteMemory) Save(_ context.Context, s mask_monitor.MuteState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = mask_monitor.MuteState{Active: s.Active, Until: copyTime(s.Until)}
	return nil
}

func (r *MuteMemory) Load(_ context.Context) (mask_monitor.MuteState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mask_monitor.MuteState{Active: r.state.Active, Until: copyTime(r.state.Until)}, nil
}

// copyTime keeps callers from aliasing the stored instant.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
