package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultPoolSize       = 2
	DefaultAcquireTimeout = 5 * time.Second
)

var (
	ErrPoolClosed     = errors.New("session pool is closed")
	ErrAcquireTimeout = errors.New("timeout waiting for available session")
)

// session is one loaded copy of the model with bound input/output buffers.
// A session must not Run concurrently with itself.
type session interface {
	Input() []float32
	Output() []float32
	Run() error
	Destroy()
}

// PoolStats is a point-in-time view of pool usage.
type PoolStats struct {
	Size            int
	InUse           int
	TotalAcquired   int64
	AcquireFailures int64
}

type sessionPool struct {
	sessions chan session
	size     int
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	stats  PoolStats
}

func newSessionPool(size int, timeout time.Duration, factory func() (session, error)) (*sessionPool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	if timeout <= 0 {
		timeout = DefaultAcquireTimeout
	}
	p := &sessionPool{
		sessions: make(chan session, size),
		size:     size,
		timeout:  timeout,
		stats:    PoolStats{Size: size},
	}
	for i := 0; i < size; i++ {
		s, err := factory()
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("initialize session %d: %w", i, err)
		}
		p.sessions <- s
	}
	return p, nil
}

func (p *sessionPool) Acquire(ctx context.Context) (session, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case s, ok := <-p.sessions:
		if !ok {
			return nil, ErrPoolClosed
		}
		p.mu.Lock()
		p.stats.InUse++
		p.stats.TotalAcquired++
		p.mu.Unlock()
		return s, nil
	case <-timer.C:
		p.mu.Lock()
		p.stats.AcquireFailures++
		p.mu.Unlock()
		return nil, ErrAcquireTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *sessionPool) Release(s session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		s.Destroy()
		return
	}
	p.stats.InUse--
	p.sessions <- s
}

func (p *sessionPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Destroy closes the pool and destroys idle sessions. Sessions still
// checked out are destroyed on Release.
func (p *sessionPool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.sessions)
	for s := range p.sessions {
		s.Destroy()
	}
}
