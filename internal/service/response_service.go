package service

import (
	"context"
	"time"

	"mask_monitor"
)

const (
	DefaultRecentLimit  = 20
	DefaultMuteDuration = 5 * time.Minute
)

// LogPage is the total log size plus the most recent entries, oldest first.
type LogPage struct {
	Count int                     `json:"count"`
	Logs  []mask_monitor.LogEntry `json:"logs"`
}

// Inferer is the model adapter boundary.
type Inferer interface {
	Infer(ctx context.Context, raw []byte) ([]mask_monitor.Detection, error)
	ModelName() string
}

// Observer receives service events for metrics.
type Observer interface {
	ObserveInference(d time.Duration)
	InferenceFailed(kind string)
	DetectionLogged(label string)
	SetMuted(active bool)
}

// Options tunes the services; zero values take defaults.
type Options struct {
	RecentLimit  int
	MuteDuration time.Duration
	Host         HostProbe
	Observer     Observer
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	if o.MuteDuration <= 0 {
		o.MuteDuration = DefaultMuteDuration
	}
	if o.Host == nil {
		o.Host = NewHostProbe()
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type nopObserver struct{}

func (nopObserver) ObserveInference(time.Duration) {}
func (nopObserver) InferenceFailed(string)         {}
func (nopObserver) DetectionLogged(string)         {}
func (nopObserver) SetMuted(bool)                  {}
