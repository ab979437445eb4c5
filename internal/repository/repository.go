package repository

import (
	"context"
	"database/sql"
	"mask_monitor"
)

// DetectionRepo is the append-only detection log.
type DetectionRepo interface {
	Append(ctx context.Context, entries ...mask_monitor.LogEntry) error
	List(ctx context.Context) ([]mask_monitor.LogEntry, error)
	Tail(ctx context.Context, n int) ([]mask_monitor.LogEntry, error)
	Count(ctx context.Context) (int, error)
}

// MuteRepo holds the single mute state.
type MuteRepo interface {
	Save(ctx context.Context, s mask_monitor.MuteState) error
	Load(ctx context.Context) (mask_monitor.MuteState, error)
}

type Repository struct {
	Detections DetectionRepo
	Mute       MuteRepo
}

// NewRepository returns SQL-backed stores when db is non-nil and in-process
// memory stores otherwise.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		return &Repository{
			Detections: NewDetectionMemory(),
			Mute:       NewMuteMemory(),
		}
	}
	return &Repository{
		Detections: NewDetectionSQLite(db),
		Mute:       NewMuteSQLite(db),
	}
}
