package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Number    string    `json:"number,omitempty"`
	CallerKey string    `json:"caller_key,omitempty"`
	Verdict   string    `json:"verdict,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type Action string

const (
	ActionDecisionEvaluated Action = "decision_evaluated"
	ActionRateLimitExceeded Action = "rate_limit_exceeded"
	ActionAllowlistReloaded Action = "allowlist_reloaded"
)
