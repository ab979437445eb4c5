package service

import (
	"context"
	"strings"

	"mask_monitor"
	"mask_monitor/internal/repository"
)

// Category is the summary bucket of a detection label.
type Category int

const (
	CategoryNone Category = iota
	CategoryWithMask
	CategoryNoMask
	CategoryIncorrect
)

// Classify buckets a label by case-insensitive substring match. Checks run
// in priority order: "no"/"without", then "incorrect"/"improper", then
// "mask"/"with". Any label containing "no" lands in CategoryNoMask, so
// "without_mask_incorrect" and even "unknown" count as no mask.
func Classify(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "no") || strings.Contains(l, "without"):
		return CategoryNoMask
	case strings.Contains(l, "incorrect") || strings.Contains(l, "improper"):
		return CategoryIncorrect
	case strings.Contains(l, "mask") || strings.Contains(l, "with"):
		return CategoryWithMask
	default:
		return CategoryNone
	}
}

type SummaryService struct {
	repo repository.DetectionRepo
}

func NewSummaryService(repo repository.DetectionRepo) *SummaryService {
	return &SummaryService{repo: repo}
}

// Summarize counts log entries per category; uncategorized labels are skipped.
func (s *SummaryService) Summarize(ctx context.Context) (mask_monitor.Summary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return mask_monitor.Summary{}, err
	}
	var sum mask_monitor.Summary
	for _, e := range entries {
		switch Classify(e.Label) {
		case CategoryNoMask:
			sum.NoMask++
		case CategoryIncorrect:
			sum.Incorrect++
		case CategoryWithMask:
			sum.WithMask++
		}
	}
	return sum, nil
}
