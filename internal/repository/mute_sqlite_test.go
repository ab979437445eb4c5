package repository

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"mask_monitor"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMuteSQLite_Save(t *testing.T) {
	t.Parallel()

	until := time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)

	cases := []struct {
		name  string
		state mask_monitor.MuteState
		args  []any
	}{
		{
			name:  "active with deadline",
			state: mask_monitor.MuteState{Active: true, Until: &until},
			args:  []any{muteStateRowID, true, until.UnixNano()},
		},
		{
			name:  "inactive clears deadline",
			state: mask_monitor.MuteState{},
			args:  []any{muteStateRowID, false, nil},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			defer db.Close()

			args := make([]driver.Value, 0, len(tc.args))
			for _, a := range tc.args {
				args = append(args, a)
			}
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO mute_state")).
				WithArgs(args...).
				WillReturnResult(sqlmock.NewResult(1, 1))

			if err := NewMuteSQLite(db).Save(ctx(t), tc.state); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("mock expectations: %v", err)
			}
		})
	}
}

func TestMuteSQLite_Load(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewMuteSQLite(db)
	until := time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectMuteSQL)).
		WithArgs(muteStateRowID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(selectMuteSQL)).
		WithArgs(muteStateRowID).
		WillReturnRows(sqlmock.NewRows([]string{"active", "until_unix_ns"}).AddRow(true, until.UnixNano()))

	st, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load (empty): %v", err)
	}
	if st.Active || st.Until != nil {
		t.Fatalf("expected zero state, got %+v", st)
	}

	st, err = repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !st.Active || st.Until == nil || !st.Until.Equal(until) {
		t.Fatalf("unexpected state: %+v", st)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
