package domain

import "time"

// Verdict enumerates the possible risk verdicts for a number.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictUnknown    Verdict = "unknown"
	VerdictScamLikely Verdict = "scam_likely"
)

// RiskScore is the confidence label attached to a verdict. Verdict and
// RiskScore are always set together by one classification rule, never
// independently.
type RiskScore string

const (
	RiskLow    RiskScore = "low"
	RiskMedium RiskScore = "medium"
	RiskHigh   RiskScore = "high"
)

// UnknownValue is the sentinel for carrier and country fields the upstream
// provider could not resolve.
const UnknownValue = "Unknown"

// CarrierInfo is the per-call result of a carrier lookup. Never persisted on
// its own, only embedded in a Decision.
type CarrierInfo struct {
	Carrier string
	Country string
}

// UnknownCarrier is the degraded lookup result: the pipeline must keep going
// on provider failure, never abort.
func UnknownCarrier() CarrierInfo {
	return CarrierInfo{Carrier: UnknownValue, Country: UnknownValue}
}

// SearchEvidence is the per-call result of a web evidence search. Degraded
// marks a provider failure; the reason is kept for logging but the classifier
// must not scan it for keywords, so error text cannot masquerade as a scam
// report.
type SearchEvidence struct {
	Snippets []string
	Degraded bool
	Reason   string
}

// DegradedEvidence builds the failure-marker evidence result.
func DegradedEvidence(reason string) SearchEvidence {
	return SearchEvidence{Degraded: true, Reason: reason}
}

// Decision is the persisted output record of one risk evaluation. Created
// once per evaluation, immutable thereafter.
type Decision struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Country   string    `json:"country"`
	Carrier   string    `json:"carrier"`
	Verdict   Verdict   `json:"verdict"`
	RiskScore RiskScore `json:"risk_score"`
	CheckedAt time.Time `json:"checked_at"`
}
