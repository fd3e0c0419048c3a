// Package ratelimit bounds outbound calls to the generative provider within
// a rolling time window.
package ratelimit

import (
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Stats is a snapshot of limiter state for the health endpoint.
type Stats struct {
	MaxRequests int           `json:"max_requests"`
	Window      time.Duration `json:"-"`
	WindowSecs  float64       `json:"window_seconds"`
	InFlight    int           `json:"current_requests"`
	CanProceed  bool          `json:"can_proceed"`
	Wait        time.Duration `json:"-"`
	WaitSecs    float64       `json:"wait_seconds"`
}

// SlidingWindow limits attempts to maxRequests per rolling window. Stale
// timestamps are evicted lazily on every check; nothing runs in the
// background. State is in-memory only and not persisted across restarts.
//
// Callers must check Allow before calling Record: Allow never records an
// attempt itself, and Record never refuses one.
type SlidingWindow struct {
	maxRequests int
	window      time.Duration
	clock       Clock

	mu       sync.Mutex
	attempts []time.Time
}

// NewSlidingWindow creates a limiter allowing maxRequests per window.
func NewSlidingWindow(maxRequests int, window time.Duration) *SlidingWindow {
	return NewSlidingWindowWithClock(maxRequests, window, realClock{})
}

// NewSlidingWindowWithClock creates a limiter with a custom clock (for testing).
func NewSlidingWindowWithClock(maxRequests int, window time.Duration, clock Clock) *SlidingWindow {
	return &SlidingWindow{
		maxRequests: maxRequests,
		window:      window,
		clock:       clock,
	}
}

// Allow reports whether a slot is free within the current window.
func (s *SlidingWindow) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict(s.clock.Now())
	return len(s.attempts) < s.maxRequests
}

// Record logs an attempt at the current time.
func (s *SlidingWindow) Record() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.evict(now)
	s.attempts = append(s.attempts, now)
}

// AllowAndRecord atomically checks for a free slot and, if one exists,
// records the attempt. It exists so concurrent callers cannot overrun the
// quota between a check and a record.
func (s *SlidingWindow) AllowAndRecord() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.evict(now)
	if len(s.attempts) >= s.maxRequests {
		return false
	}
	s.attempts = append(s.attempts, now)
	return true
}

// WaitTime returns the minimum time until the oldest recorded attempt falls
// outside the window, or zero if a slot is already free.
func (s *SlidingWindow) WaitTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.evict(now)
	if len(s.attempts) < s.maxRequests {
		return 0
	}
	wait := s.attempts[0].Add(s.window).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Snapshot returns current limiter state.
func (s *SlidingWindow) Snapshot() Stats {
	s.mu.Lock()
	now := s.clock.Now()
	s.evict(now)
	inFlight := len(s.attempts)
	var wait time.Duration
	if inFlight >= s.maxRequests {
		wait = s.attempts[0].Add(s.window).Sub(now)
		if wait < 0 {
			wait = 0
		}
	}
	s.mu.Unlock()

	return Stats{
		MaxRequests: s.maxRequests,
		Window:      s.window,
		WindowSecs:  s.window.Seconds(),
		InFlight:    inFlight,
		CanProceed:  inFlight < s.maxRequests,
		Wait:        wait,
		WaitSecs:    wait.Seconds(),
	}
}

// evict drops attempts outside the window. Caller must hold mu.
func (s *SlidingWindow) evict(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.attempts) && !s.attempts[i].After(cutoff) {
		i++
	}
	if i > 0 {
		s.attempts = append(s.attempts[:0], s.attempts[i:]...)
	}
}
