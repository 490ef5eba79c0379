package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phonecheck/internal/ratelimit"
)

// RouterConfig carries the transport-level policy knobs.
type RouterConfig struct {
	APIKey   string
	Limiter  ratelimit.Limiter
	IPLimit  int
	IPWindow time.Duration
}

// NewRouter wires all endpoints. Lookup and history sit behind API key auth
// and the per-IP limiter; health and metrics stay open for probes and
// scrapers.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(cfg.APIKey))
		if cfg.Limiter != nil && cfg.IPLimit > 0 {
			r.Use(IPRateLimit(cfg.Limiter, cfg.IPLimit, cfg.IPWindow, logger))
		}
		r.Post("/api/phone/lookup", h.HandleLookup)
		r.Get("/api/history", h.HandleHistory)
	})

	return r
}
