package history

import (
	"context"
	"sync"

	"phonecheck/internal/domain"
)

// MemoryStore keeps decisions in process memory. Used in tests and as a
// fallback when no durable backend is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	decisions []domain.Decision
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, decision domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, decision)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]domain.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || len(s.decisions) == 0 {
		return []domain.Decision{}, nil
	}
	start := len(s.decisions) - limit
	if start < 0 {
		start = 0
	}
	out := make([]domain.Decision, len(s.decisions)-start)
	copy(out, s.decisions[start:])
	return out, nil
}
