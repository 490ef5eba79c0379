package allowlist

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// Store holds operator-curated "known safe" numbers keyed by their normalized
// E.164 form, each with a free-text annotation explaining why the number is
// trusted. The backing file is the source of truth; the store is read-only in
// the hot path and refreshed only by an out-of-band Reload.
//
// A missing or malformed file yields an empty store, never an error: losing
// the allowlist degrades functionality (no shortcuts) but must not stop
// evaluation.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
	logger  *slog.Logger
}

// New loads the allowlist from path. The returned store is always usable.
func New(path string, logger *slog.Logger) *Store {
	s := &Store{
		path:    path,
		entries: map[string]string{},
		logger:  logger,
	}
	s.Reload()
	return s
}

// Lookup returns the annotation for a normalized number and whether the
// number is allowlisted. Pure read, O(1).
func (s *Store) Lookup(number string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	annotation, ok := s.entries[number]
	return annotation, ok
}

// Len reports the number of allowlisted entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reload re-reads the backing file. On any failure the previous entries are
// replaced with an empty set so stale trust does not outlive the file.
func (s *Store) Reload() {
	entries := map[string]string{}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		// No file means no trusted numbers; not an error.
	case err != nil:
		s.logger.Warn("allowlist unreadable, starting empty", "path", s.path, "error", err)
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			s.logger.Warn("allowlist malformed, starting empty", "path", s.path, "error", err)
			entries = map[string]string{}
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}
