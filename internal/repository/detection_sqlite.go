package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mask_monitor"
)

type DetectionSQLite struct {
	db *sql.DB
}

var _ DetectionRepo = (*DetectionSQLite)(nil)

func NewDetectionSQLite(db *sql.DB) *DetectionSQLite { return &DetectionSQLite{db: db} }

const (
	insertDetectionSQL = `INSERT INTO detection_log (logged_at, label, confidence) VALUES (?, ?, ?)`
	selectDetectionSQL = `SELECT logged_at, label, confidence FROM detection_log ORDER BY seq ASC`
	tailDetectionSQL   = `SELECT logged_at, label, confidence FROM (SELECT seq, logged_at, label, confidence FROM detection_log ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC`
	countDetectionSQL  = `SELECT COUNT(*) FROM detection_log`
)

// Append inserts all entries in one transaction so a request's detections
// land together or not at all.
func (r *DetectionSQLite) Append(ctx context.Context, entries ...mask_monitor.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, insertDetectionSQL, e.Timestamp, e.Label, e.Confidence); err != nil {
			return fmt.Errorf("insert detection %q: %w", e.Label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

func (r *DetectionSQLite) List(ctx context.Context) ([]mask_monitor.LogEntry, error) {
	return r.query(ctx, selectDetectionSQL)
}

// Tail returns up to n most recent entries, oldest first.
func (r *DetectionSQLite) Tail(ctx context.Context, n int) ([]mask_monitor.LogEntry, error) {
	if n <= 0 {
		return []mask_monitor.LogEntry{}, nil
	}
	return r.query(ctx, tailDetectionSQL, n)
}

func (r *DetectionSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countDetectionSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *DetectionSQLite) query(ctx context.Context, q string, args ...any) ([]mask_monitor.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mask_monitor.LogEntry, 0, 64)
	for rows.Next() {
		var e mask_monitor.LogEntry
		if err := rows.Scan(&e.Timestamp, &e.Label, &e.Confidence); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
