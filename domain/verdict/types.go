package verdict

// Tier is the discrete confidence classification of a hypothesis.
type Tier string

const (
	TierProven    Tier = "proven"
	TierLikely    Tier = "likely"
	TierPossible  Tier = "possible"
	TierUnlikely  Tier = "unlikely"
	TierDisproven Tier = "disproven"
)

// Confidence cut points. Every call site that buckets a 0-100 confidence
// score goes through this table; the HCP risk tiers reuse the same values so
// the two classifications can never drift apart.
const (
	ProvenThreshold   = 70.0
	PossibleThreshold = 40.0
)

// Verdict is the evaluated classification of one hypothesis.
type Verdict struct {
	Confidence float64 `json:"finalConfidence"` // externally supplied, 0-100
	Tier       Tier    `json:"verdict"`
}

// Classify buckets a 0-100 confidence score into its verdict tier. Scores at
// or above ProvenThreshold split into proven/likely on supporting evidence
// strength elsewhere; here the top bucket defaults to proven, with Likely
// reserved for callers that downgrade explicitly.
func Classify(confidence float64) Verdict {
	return Verdict{Confidence: confidence, Tier: tierFor(confidence)}
}

func tierFor(confidence float64) Tier {
	switch {
	case confidence >= ProvenThreshold:
		return TierProven
	case confidence >= PossibleThreshold:
		return TierPossible
	default:
		return TierUnlikely
	}
}

// CountsAsProven reports whether the verdict qualifies for the proven set used
// by strategy gating. Possible hypotheses never auto-qualify, regardless of
// how close their confidence sits to the threshold.
func (v Verdict) CountsAsProven() bool {
	return v.Tier == TierProven || v.Tier == TierLikely
}

// RiskTier is the HCP-level switching-risk band shown on the dashboard.
type RiskTier string

const (
	RiskHigh   RiskTier = "high"
	RiskMedium RiskTier = "medium"
	RiskLow    RiskTier = "low"
)

// RiskTierFor buckets an HCP risk score on the shared cut points.
func RiskTierFor(score float64) RiskTier {
	switch {
	case score >= ProvenThreshold:
		return RiskHigh
	case score >= PossibleThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
