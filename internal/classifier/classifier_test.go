package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"phonecheck/internal/domain"
)

func evidence(snippets ...string) domain.SearchEvidence {
	return domain.SearchEvidence{Snippets: snippets}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		carrier  string
		country  string
		evidence domain.SearchEvidence
		verdict  domain.Verdict
		risk     domain.RiskScore
	}{
		{
			name:     "clean evidence and known carrier",
			carrier:  "Telco X",
			country:  "AU",
			evidence: evidence("no issues found"),
			verdict:  domain.VerdictSafe,
			risk:     domain.RiskLow,
		},
		{
			name:     "keyword outranks unknown carrier",
			carrier:  "Unknown",
			country:  "Unknown",
			evidence: evidence("reported as a scam call"),
			verdict:  domain.VerdictScamLikely,
			risk:     domain.RiskHigh,
		},
		{
			name:     "keyword match is case insensitive",
			carrier:  "Telco X",
			country:  "AU",
			evidence: evidence("number appears on SCAMwatch"),
			verdict:  domain.VerdictScamLikely,
			risk:     domain.RiskHigh,
		},
		{
			name:     "keyword in later snippet",
			carrier:  "Telco X",
			country:  "AU",
			evidence: evidence("looks fine", "many users block this caller"),
			verdict:  domain.VerdictScamLikely,
			risk:     domain.RiskHigh,
		},
		{
			name:     "unknown carrier without keywords",
			carrier:  "Unknown",
			country:  "AU",
			evidence: evidence("nothing of note"),
			verdict:  domain.VerdictUnknown,
			risk:     domain.RiskMedium,
		},
		{
			name:     "empty carrier treated as unknown",
			carrier:  "",
			country:  "AU",
			evidence: evidence(),
			verdict:  domain.VerdictUnknown,
			risk:     domain.RiskMedium,
		},
		{
			name:     "none carrier treated as unknown",
			carrier:  "None",
			country:  "AU",
			evidence: evidence("quiet number"),
			verdict:  domain.VerdictUnknown,
			risk:     domain.RiskMedium,
		},
		{
			name:     "no evidence with known carrier",
			carrier:  "Telco X",
			country:  "AU",
			evidence: evidence(),
			verdict:  domain.VerdictSafe,
			risk:     domain.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, risk := Classify(tt.carrier, tt.country, tt.evidence)
			require.Equal(t, tt.verdict, verdict)
			require.Equal(t, tt.risk, risk)
		})
	}
}

// Degraded evidence carries provider error text that may itself contain
// keywords ("search failed: blocked by provider"); it must never reach the
// keyword scan.
func TestClassifyIgnoresDegradedEvidence(t *testing.T) {
	degraded := domain.DegradedEvidence("search provider blocked the request, suspected spam traffic")

	verdict, risk := Classify("Telco X", "AU", degraded)
	require.Equal(t, domain.VerdictSafe, verdict)
	require.Equal(t, domain.RiskLow, risk)

	verdict, risk = Classify("Unknown", "Unknown", degraded)
	require.Equal(t, domain.VerdictUnknown, verdict)
	require.Equal(t, domain.RiskMedium, risk)
}

func TestClassifyDeterministic(t *testing.T) {
	ev := evidence("reported as fraud")
	v1, r1 := Classify("Telco X", "AU", ev)
	v2, r2 := Classify("Telco X", "AU", ev)
	require.Equal(t, v1, v2)
	require.Equal(t, r1, r2)
}
