package classifier

import (
	"strings"

	"phonecheck/internal/domain"
)

// scamKeywords are the indicators scanned for in evidence snippets. The set
// is fixed and deliberately small; this is a keyword heuristic, not a trained
// model.
var scamKeywords = []string{"scam", "fraud", "spam", "report", "block", "scamwatch"}

// Classify applies the risk rules to a gathered carrier record and search
// evidence. This is pure domain logic - no I/O, no side effects.
//
// Rule priority:
//  1. Any scam keyword in usable evidence -> ScamLikely / High.
//  2. Carrier absent or unknown -> Unknown / Medium.
//  3. Otherwise -> Safe / Low.
//
// Degraded evidence carries an error marker instead of real snippets and is
// never scanned, so provider failure text cannot trip rule 1.
func Classify(carrier, country string, evidence domain.SearchEvidence) (domain.Verdict, domain.RiskScore) {
	_ = country // recorded in the Decision but not weighed by any rule

	if !evidence.Degraded && containsScamKeyword(evidence.Snippets) {
		return domain.VerdictScamLikely, domain.RiskHigh
	}
	if isUnknownCarrier(carrier) {
		return domain.VerdictUnknown, domain.RiskMedium
	}
	return domain.VerdictSafe, domain.RiskLow
}

func containsScamKeyword(snippets []string) bool {
	text := strings.ToLower(strings.Join(snippets, " "))
	for _, keyword := range scamKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isUnknownCarrier(carrier string) bool {
	switch strings.ToLower(strings.TrimSpace(carrier)) {
	case "", "none", "unknown":
		return true
	}
	return false
}
