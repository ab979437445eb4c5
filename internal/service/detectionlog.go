package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"mask_monitor/internal/repository"
)

// ErrEmptyLog is returned by Export when nothing has been logged yet.
var ErrEmptyLog = errors.New("no detections logged yet")

// csvHeader mirrors the LogEntry field order.
var csvHeader = []string{"timestamp", "label", "confidence"}

type DetectionLogService struct {
	repo  repository.DetectionRepo
	limit int
}

func NewDetectionLogService(repo repository.DetectionRepo, limit int) *DetectionLogService {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &DetectionLogService{repo: repo, limit: limit}
}

// Recent returns the total count and the last limit entries.
func (s *DetectionLogService) Recent(ctx context.Context) (LogPage, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return LogPage{}, err
	}
	logs, err := s.repo.Tail(ctx, s.limit)
	if err != nil {
		return LogPage{}, err
	}
	return LogPage{Count: n, Logs: logs}, nil
}

// Export writes the whole log as CSV. Nothing is written when it returns ErrEmptyLog.
func (s *DetectionLogService) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrEmptyLog
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Timestamp, e.Label, strconv.FormatFloat(e.Confidence, 'f', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
