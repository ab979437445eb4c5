package repository

import (
	"context"
	"sync"

	"mask_monitor"
)

// DetectionMemory keeps the log in a slice for the process lifetime.
type DetectionMemory struct {
	mu      sync.RWMutex
	entries []mask_monitor.LogEntry
}

var _ DetectionRepo = (*DetectionMemory)(nil)

func NewDetectionMemory() *DetectionMemory {
	return &DetectionMemory{}
}

func (r *DetectionMemory) Append(_ context.Context, entries ...mask_monitor.LogEntry) error {
	r.mu.Lock()
	r.entries = append(r.entries, entries...)
	r.mu.Unlock()
	return nil
}

// List returns a copy of every entry in insertion order.
func (r *DetectionMemory) List(_ context.Context) ([]mask_monitor.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mask_monitor.LogEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// Tail returns up to n most recent entries, oldest first.
func (r *DetectionMemory) Tail(_ context.Context, n int) ([]mask_monitor.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 {
		return []mask_monitor.LogEntry{}, nil
	}
	start := len(r.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]mask_monitor.LogEntry, len(r.entries)-start)
	copy(out, r.entries[start:])
	return out, nil
}

func (r *DetectionMemory) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}
