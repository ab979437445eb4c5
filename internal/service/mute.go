package service

import (
	"context"
	"sync"
	"time"

	"mask_monitor"
	"mask_monitor/internal/logger"
	"mask_monitor/internal/repository"
)

// MuteService is a two-state machine (muted, unmuted). Expiry is lazy:
// nothing fires when the window ends; the next Status call observes it
// and transitions back to unmuted.
type MuteService struct {
	mu       sync.Mutex
	repo     repository.MuteRepo
	duration time.Duration
	obs      Observer
	now      func() time.Time
	log      *logger.Logger
}

func NewMuteService(repo repository.MuteRepo, duration time.Duration, obs Observer, now func() time.Time, log *logger.Logger) *MuteService {
	if duration <= 0 {
		duration = DefaultMuteDuration
	}
	if obs == nil {
		obs = nopObserver{}
	}
	if now == nil {
		now = time.Now
	}
	return &MuteService{repo: repo, duration: duration, obs: obs, now: now, log: log}
}

func (s *MuteService) Window() time.Duration { return s.duration }

// Mute enters the muted state for one window. Calling it while muted
// restarts the window.
func (s *MuteService) Mute(ctx context.Context) (mask_monitor.MuteState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until := s.now().Add(s.duration)
	st := mask_monitor.MuteState{Active: true, Until: &until}
	if err := s.repo.Save(ctx, st); err != nil {
		return mask_monitor.MuteState{}, err
	}
	s.obs.SetMuted(true)
	if s.log != nil {
		s.log.Infow("mute_enabled", "until", until.Format(time.TimeOnly))
	}
	return st, nil
}

// Status evaluates expiry and returns the resulting state.
func (s *MuteService) Status(ctx context.Context) (mask_monitor.MuteState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.Load(ctx)
	if err != nil {
		return mask_monitor.MuteState{}, err
	}
	next, expired := evaluate(st, s.now())
	if !expired {
		return st, nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return mask_monitor.MuteState{}, err
	}
	s.obs.SetMuted(false)
	if s.log != nil {
		s.log.Infow("mute_expired")
	}
	return next, nil
}

// evaluate is the single transition: muted and past the deadline becomes
// unmuted with the deadline cleared. A muted state with no deadline is
// treated as already past it. Unmuted states and muted states still inside
// their window are returned as is.
func evaluate(st mask_monitor.MuteState, now time.Time) (mask_monitor.MuteState, bool) {
	if !st.Active {
		return st, false
	}
	if st.Until != nil && !now.After(*st.Until) {
		return st, false
	}
	return mask_monitor.MuteState{}, true
}
