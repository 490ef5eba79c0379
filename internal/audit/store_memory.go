package audit

import (
	"context"
	"sync"
)

const defaultCapacity = 1024

// MemoryStore keeps the most recent events in a bounded ring. It backs the
// default deployment and doubles as the test sink.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{capacity: defaultCapacity}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	return nil
}

// Recent returns up to limit events, oldest first.
func (s *MemoryStore) Recent(limit int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]Event, limit)
	copy(out, s.events[len(s.events)-limit:])
	return out
}
