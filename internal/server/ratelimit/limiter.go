// Package ratelimit implements a fixed-window request counter keyed by an
// arbitrary caller identifier. The decision and the counter update happen
// under one lock, so concurrent requests sharing a key never lose counts.
package ratelimit

import (
	"sync"
	"time"
)

const (
	cleanupInterval = 5 * time.Minute
	staleThreshold  = 10 * time.Minute
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the Clock used in production.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type window struct {
	count int
	reset time.Time
}

// Limiter counts requests per key over a fixed window. Expired windows reset
// lazily on first access; entries whose window expired long ago are swept
// inline during Allow calls, since keys come from a caller-supplied header
// and the map must not grow without bound.
type Limiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	limit       int
	interval    time.Duration
	clk         Clock
	lastCleanup time.Time
}

// Result describes one rate-limit decision. Remaining and Reset are reported
// to the caller via the standard rate-limit headers.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// NewLimiter creates a limiter that admits limit requests per interval per
// key. A nil clk selects the real clock.
func NewLimiter(limit int, interval time.Duration, clk Clock) *Limiter {
	if clk == nil {
		clk = RealClock{}
	}
	return &Limiter{
		windows:     make(map[string]*window),
		limit:       limit,
		interval:    interval,
		clk:         clk,
		lastCleanup: clk.Now(),
	}
}

// Allow records one request for key and decides whether it fits in the
// current window.
func (l *Limiter) Allow(key string) Result {
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > cleanupInterval {
		for k, w := range l.windows {
			if now.Sub(w.reset) > staleThreshold {
				delete(l.windows, k)
			}
		}
		l.lastCleanup = now
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(l.interval)}
		l.windows[key] = w
	}

	w.count++

	remaining := l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   w.count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		Reset:     w.reset,
	}
}
