package ratelimit

import (
	"context"
	"strings"
	"time"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Limiter admits or rejects a request for a key under a sliding window of
// `window` holding at most `limit` admissions. A rejected request records
// nothing. Rate limiting is best-effort: state is not persisted and a restart
// resets all counters.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Distinct keyspaces keep end-user identities and network origins from
// exhausting each other's budgets.
const (
	namespaceUser = "user:"
	namespaceIP   = "ip:"
)

// UserKey builds the admission key for an end-user identity.
func UserKey(callerKey string) string {
	return namespaceUser + SanitizeKeySegment(callerKey)
}

// IPKey builds the admission key for a network origin.
func IPKey(addr string) string {
	return namespaceIP + SanitizeKeySegment(addr)
}

// SanitizeKeySegment escapes delimiter characters in key segments so a
// caller-controlled identifier containing ':' cannot collide with another
// bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
