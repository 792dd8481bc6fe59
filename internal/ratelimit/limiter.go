package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Limiter enforces a minimum spacing between outbound calls on a named
// channel. Channels are independent: waiting on "geocode" never gates a
// "route" call. This is deliberately last-call spacing, not a token bucket;
// the public services this engine talks to ask for at most one request per
// interval, with no burst allowance.
type Limiter struct {
	interval time.Duration
	clock    clockwork.Clock

	mu   sync.Mutex
	last map[string]time.Time
}

// New creates a Limiter with the given minimum interval between calls on
// each channel. A nil clock uses real time.
func New(interval time.Duration, clock clockwork.Clock) *Limiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Limiter{
		interval: interval,
		clock:    clock,
		last:     make(map[string]time.Time),
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous call recorded on channel, then records the new call time. The
// first call on a channel returns immediately. A cancelled context aborts
// the wait without recording a call.
func (l *Limiter) Wait(ctx context.Context, channel string) error {
	l.mu.Lock()
	var wait time.Duration
	if last, ok := l.last[channel]; ok {
		if elapsed := l.clock.Since(last); elapsed < l.interval {
			wait = l.interval - elapsed
		}
	}
	l.mu.Unlock()

	if wait > 0 {
		timer := l.clock.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.Chan():
		}
	}

	l.mu.Lock()
	l.last[channel] = l.clock.Now()
	l.mu.Unlock()
	return nil
}
