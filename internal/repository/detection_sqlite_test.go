package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"mask_monitor"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestDetectionSQLite_Append_InsertsAllInOneTx(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewDetectionSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertDetectionSQL)).
		WithArgs("2025-01-01 10:00:00", "with_mask", 0.93).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertDetectionSQL)).
		WithArgs("2025-01-01 10:00:00", "without_mask", 0.5).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = repo.Append(ctx(t),
		mask_monitor.LogEntry{Timestamp: "2025-01-01 10:00:00", Label: "with_mask", Confidence: 0.93},
		mask_monitor.LogEntry{Timestamp: "2025-01-01 10:00:00", Label: "without_mask", Confidence: 0.5},
	)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestDetectionSQLite_Append_RollsBackOnError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewDetectionSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO detection_log").
		WillReturnError(errors.New("down"))
	mock.ExpectRollback()

	err = repo.Append(ctx(t), mask_monitor.LogEntry{Timestamp: "t", Label: "x", Confidence: 0.1})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestDetectionSQLite_Append_NoEntriesIsNoop(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	if err := NewDetectionSQLite(db).Append(ctx(t)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestDetectionSQLite_ListAndTail(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewDetectionSQLite(db)
	cols := []string{"logged_at", "label", "confidence"}

	mock.ExpectQuery(regexp.QuoteMeta(selectDetectionSQL)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("2025-01-01 10:00:00", "with_mask", 0.9).
			AddRow("2025-01-01 10:00:01", "without_mask", 0.8))

	mock.ExpectQuery(regexp.QuoteMeta(tailDetectionSQL)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("2025-01-01 10:00:01", "without_mask", 0.8))

	all, err := repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Label != "with_mask" || all[1].Confidence != 0.8 {
		t.Fatalf("unexpected list: %+v", all)
	}

	tail, err := repo.Tail(ctx(t), 1)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(tail) != 1 || tail[0].Label != "without_mask" {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestDetectionSQLite_TailNonPositiveSkipsQuery(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	got, err := NewDetectionSQLite(db).Tail(ctx(t), 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("Tail(0) = %v, %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestDetectionSQLite_Count(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countDetectionSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(7))

	n, err := NewDetectionSQLite(db).Count(ctx(t))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 7 {
		t.Fatalf("want 7, got %d", n)
	}
}

func TestDetectionSQLite_ScanError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectDetectionSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"logged_at", "label", "confidence"}).
			AddRow("2025-01-01 10:00:00", "with_mask", "not-a-float"))

	if _, err := NewDetectionSQLite(db).List(ctx(t)); err == nil {
		t.Fatalf("expected scan error")
	}
}
