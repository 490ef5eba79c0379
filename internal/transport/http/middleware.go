package httptransport

import (
	"crypto/hmac"
	"crypto/sha256"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"phonecheck/internal/ratelimit"
	pkgerrors "phonecheck/pkg/errors"
)

// APIKeyAuth rejects requests whose Authorization header does not carry the
// configured bearer key. Both sides are hashed before comparison so the check
// is constant-time regardless of key length.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(apiKey))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
				return
			}
			got := sha256.Sum256([]byte(token))
			if !hmac.Equal(got[:], want[:]) {
				writeError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IPRateLimit bounds requests per network origin. The limiter keyspace is
// separate from the per-user pipeline budget, so one cannot exhaust the
// other. A limiter backend failure fails open.
func IPRateLimit(limiter ratelimit.Limiter, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), ratelimit.IPKey(clientIP(r)), limit, window)
			if err != nil {
				logger.WarnContext(r.Context(), "ip rate limit check failed, admitting", "error", err)
			} else if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"error":       string(pkgerrors.CodeRateLimited),
					"message":     "too many requests",
					"retry_after": res.RetryAfter,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
