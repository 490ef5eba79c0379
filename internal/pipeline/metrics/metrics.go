package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation pipeline.
type Metrics struct {
	// Evidence gathering latencies by source
	EvidenceLatency *prometheus.HistogramVec

	// Decision outcomes by verdict and risk score
	DecisionOutcome *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram

	// Evaluations rejected by the rate limiter
	RateLimitRejections prometheus.Counter

	// Evaluations short-circuited by the allowlist
	AllowlistHits prometheus.Counter

	// Best-effort history writes that failed
	HistoryAppendFailures prometheus.Counter
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		EvidenceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonecheck_pipeline_evidence_duration_seconds",
			Help:    "Duration of evidence gathering operations by source",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}), // source: "carrier", "search"

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phonecheck_pipeline_decisions_total",
			Help: "Total decisions by verdict and risk score",
		}, []string{"verdict", "risk_score"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "phonecheck_pipeline_evaluate_duration_seconds",
			Help:    "Duration of full evaluation including evidence gathering",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		RateLimitRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonecheck_pipeline_rate_limit_rejections_total",
			Help: "Evaluations rejected by the sliding-window rate limiter",
		}),

		AllowlistHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonecheck_pipeline_allowlist_hits_total",
			Help: "Evaluations short-circuited by an allowlist match",
		}),

		HistoryAppendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonecheck_pipeline_history_append_failures_total",
			Help: "Decision history writes that failed",
		}),
	}
}

// ObserveEvidenceLatency records the duration of fetching evidence from a source.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m != nil {
		m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(verdict, riskScore string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(verdict, riskScore).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementRateLimitRejection records a rejected evaluation.
func (m *Metrics) IncrementRateLimitRejection() {
	if m != nil {
		m.RateLimitRejections.Inc()
	}
}

// IncrementAllowlistHit records an allowlist short-circuit.
func (m *Metrics) IncrementAllowlistHit() {
	if m != nil {
		m.AllowlistHits.Inc()
	}
}

// IncrementHistoryAppendFailure records a failed best-effort history write.
func (m *Metrics) IncrementHistoryAppendFailure() {
	if m != nil {
		m.HistoryAppendFailures.Inc()
	}
}
