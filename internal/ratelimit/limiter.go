// Package ratelimit paces outgoing model requests.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"deepsearch/internal/spec"
)

// Limiter blocks until a request slot is available.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Build constructs a limiter from configuration. A zero
// requests_per_minute disables pacing.
func Build(cfg spec.LimiterConfig) Limiter {
	if cfg.RequestsPerMinute <= 0 {
		return NoopLimiter
	}
	return NewInterval(time.Minute / time.Duration(cfg.RequestsPerMinute))
}

// NoopLimiter never blocks.
var NoopLimiter Limiter = noopLimiter{}

type noopLimiter struct{}

func (noopLimiter) Acquire(ctx context.Context) error {
	return ctx.Err()
}

// IntervalLimiter spaces requests at least a fixed interval apart.
type IntervalLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewInterval constructs a limiter with the given minimum spacing.
func NewInterval(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Acquire waits for the next request slot or until the context is done.
func (l *IntervalLimiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	wait := l.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	start := now.Add(wait)
	l.next = start.Add(l.interval)
	l.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}
	return l.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
