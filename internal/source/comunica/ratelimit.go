package comunica

import (
	"fmt"
	"sync"
	"time"
)

type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

func (s RateLimitStatus) Exhausted() bool {
	return s.Remaining <= 0
}

// RateLimiter tracks the call budget of the communications API. TryAcquire
// must check and consume one call atomically so that a shared
// implementation can back several processes.
type RateLimiter interface {
	TryAcquire(now time.Time) bool
	// Observe adopts the budget reported by the server as is, even above
	// the local limit. A negative remaining or zero resetAt leaves that
	// part unchanged.
	Observe(remaining int, resetAt time.Time)
	Status(now time.Time) RateLimitStatus
}

// RateLimitedError is returned instead of sending a request once the budget
// is exhausted. The caller decides whether to wait for Status.ResetAt.
type RateLimitedError struct {
	Status RateLimitStatus
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("communications api rate limit exhausted, resets at %s", e.Status.ResetAt.Format(time.RFC3339))
}

// LocalRateLimiter is a fixed-window counter held in process memory. Each
// new window starts with limit calls.
type LocalRateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	remaining int
	resetAt   time.Time
}

func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{limit: limit, window: window}
}

func (l *LocalRateLimiter) rollover(now time.Time) {
	if !now.Before(l.resetAt) {
		l.remaining = l.limit
		l.resetAt = now.Add(l.window)
	}
}

func (l *LocalRateLimiter) TryAcquire(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(now)
	if l.remaining <= 0 {
		return false
	}
	l.remaining--
	return true
}

func (l *LocalRateLimiter) Observe(remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !resetAt.IsZero() {
		l.resetAt = resetAt
	}
	if remaining >= 0 {
		l.remaining = remaining
	}
}

func (l *LocalRateLimiter) Status(now time.Time) RateLimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(now)
	return RateLimitStatus{
		Limit:     l.limit,
		Remaining: max(l.remaining, 0),
		ResetAt:   l.resetAt,
	}
}
