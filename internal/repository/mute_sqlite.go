package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mask_monitor"
)

type MuteSQLite struct {
	db *sql.DB
}

var _ MuteRepo = (*MuteSQLite)(nil)

func NewMuteSQLite(db *sql.DB) *MuteSQLite {
	return &MuteSQLite{db: db}
}

const (
	muteStateRowID = 1

	upsertMuteSQL = `
		INSERT INTO mute_state (id, active, until_unix_ns)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			active=excluded.active,
			until_unix_ns=excluded.until_unix_ns
	`

	selectMuteSQL = `SELECT active, until_unix_ns FROM mute_state WHERE id=?`
)

// Save upserts the mute_state row (id always 1).
func (r *MuteSQLite) Save(ctx context.Context, s mask_monitor.MuteState) error {
	var until sql.NullInt64
	if s.Until != nil {
		until = sql.NullInt64{Int64: s.Until.UnixNano(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, upsertMuteSQL, muteStateRowID, s.Active, until)
	return err
}

// Load returns the zero (unmuted) state when nothing was saved yet.
func (r *MuteSQLite) Load(ctx context.Context) (mask_monitor.MuteState, error) {
	var (
		s     mask_monitor.MuteState
		until sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, selectMuteSQL, muteStateRowID).Scan(&s.Active, &until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mask_monitor.MuteState{}, nil
		}
		return mask_monitor.MuteState{}, err
	}
	if until.Valid {
		t := time.Unix(0, until.Int64)
		s.Until = &t
	}
	return s, nil
}
