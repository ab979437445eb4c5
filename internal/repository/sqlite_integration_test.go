package repository_test

import (
	"context"
	"testing"
	"time"

	"mask_monitor"
	"mask_monitor/internal/repository"
	"mask_monitor/internal/repository/db"
)

func TestSQLiteInMemory_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repos.Detections.Append(ctx,
			mask_monitor.LogEntry{Timestamp: "2025-01-01 10:00:00", Label: "with_mask", Confidence: 0.9},
		)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	_ = repos.Detections.Append(ctx, mask_monitor.LogEntry{Timestamp: "2025-01-01 10:00:01", Label: "without_mask", Confidence: 0.75})

	n, err := repos.Detections.Count(ctx)
	if err != nil || n != 4 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	tail, err := repos.Detections.Tail(ctx, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Label != "with_mask" || tail[1].Label != "without_mask" || tail[1].Confidence != 0.75 {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	until := time.Now().Add(5 * time.Minute)
	if err := repos.Mute.Save(ctx, mask_monitor.MuteState{Active: true, Until: &until}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	st, err := repos.Mute.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !st.Active || st.Until == nil || !st.Until.Equal(until) {
		t.Fatalf("unexpected mute state: %+v", st)
	}
}
