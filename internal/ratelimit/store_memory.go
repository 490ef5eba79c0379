package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how long an idle key's empty window may linger before the
// lazy sweep reclaims it, keeping memory bounded under many distinct callers.
const sweepEvery = 5 * time.Minute

// InMemoryStore implements Limiter with per-key sliding windows. All mutation
// happens under one mutex, so two concurrent admissions for the same key can
// never both observe spare capacity when only one slot remains.
type InMemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*slidingWindow
	lastSweep time.Time

	// now is swappable for tests.
	now func() time.Time
}

// slidingWindow tracks admission timestamps inside the trailing window.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*slidingWindow),
		now:     time.Now,
	}
}

// Allow prunes expired admissions for the key, then admits iff fewer than
// limit remain. It never returns an error; the error slot exists to satisfy
// Limiter alongside remote stores.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.maybeSweep(now)

	w := s.windows[key]
	if w == nil {
		w = &slidingWindow{window: window}
		s.windows[key] = w
	}
	w.window = window
	w.prune(now)

	if len(w.timestamps) >= limit {
		return &Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    w.timestamps[0].Add(window),
			RetryAfter: int(w.timestamps[0].Add(window).Sub(now).Seconds()) + 1,
		}, nil
	}

	w.timestamps = append(w.timestamps, now)
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(w.timestamps),
		ResetAt:   w.timestamps[0].Add(window),
	}, nil
}

// Count reports how many admissions remain inside the key's window.
func (s *InMemoryStore) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[key]
	if w == nil {
		return 0
	}
	w.prune(s.now())
	return len(w.timestamps)
}

// Reset clears the window for a key.
func (s *InMemoryStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
}

// maybeSweep drops keys whose windows have fully expired. Called with the
// mutex held.
func (s *InMemoryStore) maybeSweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepEvery {
		return
	}
	s.lastSweep = now
	for key, w := range s.windows {
		w.prune(now)
		if len(w.timestamps) == 0 {
			delete(s.windows, key)
		}
	}
}

// prune removes timestamps older than the trailing window.
func (w *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for ; i < len(w.timestamps); i++ {
		if w.timestamps[i].After(cutoff) {
			break
		}
	}
	w.timestamps = w.timestamps[i:]
}
