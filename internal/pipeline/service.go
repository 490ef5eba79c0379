package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"phonecheck/internal/audit"
	"phonecheck/internal/classifier"
	"phonecheck/internal/domain"
	"phonecheck/internal/history"
	"phonecheck/internal/pipeline/metrics"
	"phonecheck/internal/ratelimit"
	pkgerrors "phonecheck/pkg/errors"
	"phonecheck/pkg/platform/sentinel"
)

// Service orchestrates one evaluation: normalize, allowlist short-circuit,
// rate-limited evidence gathering, classification, and best-effort
// persistence. It is reentrant; the only shared mutable state lives behind
// the limiter and the stores, which serialize their own access.
type Service struct {
	allowlist AllowlistPort
	carrier   CarrierPort
	search    SearchPort
	limiter   ratelimit.Limiter
	history   history.Store
	auditor   AuditPort
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	userLimit     int
	window        time.Duration
	defaultRegion string
}

// Params carries the pipeline's dependencies. Allowlist, Carrier, Search,
// and History are required; the rest default to no-ops or the values below.
type Params struct {
	Allowlist AllowlistPort
	Carrier   CarrierPort
	Search    SearchPort
	Limiter   ratelimit.Limiter
	History   history.Store
	Audit     AuditPort
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	UserLimit     int           // evaluations per caller per window; default 100
	Window        time.Duration // default 1h
	DefaultRegion string        // prefix replacing a trunk zero; default "+61"
}

func New(p Params) (*Service, error) {
	if p.Allowlist == nil {
		return nil, errors.New("pipeline: allowlist is required")
	}
	if p.Carrier == nil {
		return nil, errors.New("pipeline: carrier port is required")
	}
	if p.Search == nil {
		return nil, errors.New("pipeline: search port is required")
	}
	if p.History == nil {
		return nil, errors.New("pipeline: history store is required")
	}
	if p.Logger == nil {
		p.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.UserLimit <= 0 {
		p.UserLimit = 100
	}
	if p.Window <= 0 {
		p.Window = time.Hour
	}
	if p.DefaultRegion == "" {
		p.DefaultRegion = "+61"
	}

	return &Service{
		allowlist:     p.Allowlist,
		carrier:       p.Carrier,
		search:        p.Search,
		limiter:       p.Limiter,
		history:       p.History,
		auditor:       p.Audit,
		metrics:       p.Metrics,
		logger:        p.Logger,
		tracer:        otel.Tracer("phonecheck/pipeline"),
		userLimit:     p.UserLimit,
		window:        p.Window,
		defaultRegion: p.DefaultRegion,
	}, nil
}

// Evaluate runs the full pipeline for one raw input. callerKey scopes the
// rate-limit window (per end-user identity); an empty key skips rate
// limiting. The caller always receives either a Decision or a rate-limited
// error, never an unhandled fault.
func (s *Service) Evaluate(ctx context.Context, rawInput, callerKey string) (domain.Decision, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "pipeline.Evaluate")
	defer span.End()

	number, err := domain.NormalizePhoneNumber(rawInput, s.defaultRegion)
	if err != nil {
		// Malformed input is a completed evaluation, not a fault.
		span.SetAttributes(attribute.Bool("phonecheck.malformed", true))
		s.logger.InfoContext(ctx, "malformed number", "input_length", len(rawInput))
		return s.finish(ctx, domain.Decision{
			Number:    strings.TrimSpace(rawInput),
			Country:   domain.UnknownValue,
			Carrier:   domain.UnknownValue,
			Verdict:   domain.VerdictUnknown,
			RiskScore: domain.RiskMedium,
		}, start), nil
	}
	span.SetAttributes(attribute.String("phonecheck.number", number))

	if annotation, ok := s.allowlist.Lookup(number); ok {
		s.metrics.IncrementAllowlistHit()
		span.SetAttributes(attribute.Bool("phonecheck.allowlist_hit", true))
		s.logger.InfoContext(ctx, "allowlist hit", "number", number, "annotation", annotation)
		return s.finish(ctx, domain.Decision{
			Number:    number,
			Country:   s.defaultRegion,
			Carrier:   "Safe",
			Verdict:   domain.VerdictSafe,
			RiskScore: domain.RiskLow,
		}, start), nil
	}

	if s.limiter != nil && callerKey != "" {
		res, lerr := s.limiter.Allow(ctx, ratelimit.UserKey(callerKey), s.userLimit, s.window)
		switch {
		case lerr != nil:
			// Fail open: the limiter is best-effort, availability wins.
			s.logger.WarnContext(ctx, "rate limit check failed, admitting", "error", lerr)
		case !res.Allowed:
			s.metrics.IncrementRateLimitRejection()
			span.SetAttributes(attribute.Bool("phonecheck.rate_limited", true))
			s.emitAudit(ctx, audit.Event{
				Action:    audit.ActionRateLimitExceeded,
				Number:    number,
				CallerKey: callerKey,
				Reason:    fmt.Sprintf("retry after %ds", res.RetryAfter),
			})
			s.logger.WarnContext(ctx, "evaluation rate limited",
				"number", number,
				"retry_after", res.RetryAfter,
			)
			return domain.Decision{}, pkgerrors.Wrap(pkgerrors.CodeRateLimited,
				"evaluation rate limit exceeded", sentinel.ErrRateLimited)
		}
	}

	evidence := s.gatherEvidence(ctx, number)
	verdict, riskScore := classifier.Classify(evidence.Carrier.Carrier, evidence.Carrier.Country, evidence.Search)

	return s.finish(ctx, domain.Decision{
		Number:    number,
		Country:   evidence.Carrier.Country,
		Carrier:   evidence.Carrier.Carrier,
		Verdict:   verdict,
		RiskScore: riskScore,
	}, start), nil
}

// Recent returns the most recent decisions, oldest of the window first. An
// unreadable store degrades to an empty slice so read-only consumers never
// see a fault.
func (s *Service) Recent(ctx context.Context, limit int) []domain.Decision {
	decisions, err := s.history.Recent(ctx, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "history read failed", "error", err)
		return nil
	}
	return decisions
}

// finish stamps identity and timestamp, persists best-effort, and emits
// observability signals. Persistence failure is logged and counted but never
// withholds the computed Decision from the caller.
func (s *Service) finish(ctx context.Context, d domain.Decision, start time.Time) domain.Decision {
	d.ID = ulid.Make().String()
	d.CheckedAt = time.Now().UTC()

	if err := s.history.Append(ctx, d); err != nil {
		s.metrics.IncrementHistoryAppendFailure()
		s.logger.ErrorContext(ctx, "history append failed", "decision_id", d.ID, "error", err)
	}

	s.metrics.IncrementOutcome(string(d.Verdict), string(d.RiskScore))
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	s.emitAudit(ctx, audit.Event{
		Action:  audit.ActionDecisionEvaluated,
		Number:  d.Number,
		Verdict: string(d.Verdict),
	})
	s.logger.InfoContext(ctx, "decision evaluated",
		"decision_id", d.ID,
		"number", d.Number,
		"verdict", d.Verdict,
		"risk_score", d.RiskScore,
	)
	return d
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
