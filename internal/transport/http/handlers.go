package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"phonecheck/internal/domain"
	pkgerrors "phonecheck/pkg/errors"
)

const maxHistoryLimit = 100

// Service defines the pipeline operations the transport needs.
type Service interface {
	Evaluate(ctx context.Context, rawInput, callerKey string) (domain.Decision, error)
	Recent(ctx context.Context, limit int) []domain.Decision
}

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

// Handler is the thin HTTP layer. It delegates to the pipeline without
// embedding decision logic so transport concerns stay isolated.
type Handler struct {
	service   Service
	logger    *slog.Logger
	version   string
	startedAt time.Time
	checks    map[string]HealthCheck
}

func NewHandler(service Service, logger *slog.Logger, version string, checks map[string]HealthCheck) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		version:   version,
		startedAt: time.Now(),
		checks:    checks,
	}
}

type lookupRequest struct {
	Number  string `json:"number"`
	UserKey string `json:"user_key"`
}

// HandleLookup handles POST /api/phone/lookup requests.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.Number == "" {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "number is required"))
		return
	}

	callerKey := req.UserKey
	if callerKey == "" {
		callerKey = clientIP(r)
	}

	decision, err := h.service.Evaluate(ctx, req.Number, callerKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

// HandleHistory handles GET /api/history requests. An unreadable store is
// already degraded to an empty list by the service, so this never errors.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	decisions := h.service.Recent(r.Context(), limit)
	if decisions == nil {
		decisions = []domain.Decision{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"decisions": decisions,
		"count":     len(decisions),
	})
}

// HandleHealth handles GET /api/health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = "error"
			healthy = false
			h.logger.WarnContext(ctx, "health check failed", "service", name, "error", err)
			continue
		}
		services[name] = "ok"
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":         status,
		"version":        h.version,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"services":       services,
	})
}
