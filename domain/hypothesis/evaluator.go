package hypothesis

import (
	"switchscope/domain/verdict"
)

// Evaluate classifies a hypothesis's externally supplied confidence score into
// its verdict tier. Within the top and bottom buckets the tier is refined by
// the shape of the evidence: contradicting findings downgrade proven to
// likely, and a fully contradicted hypothesis lands on disproven rather than
// unlikely. The bucket boundaries themselves come from the shared threshold
// table in the verdict package.
func Evaluate(h Hypothesis) Hypothesis {
	h.Verdict = verdict.Verdict{
		Confidence: h.Confidence,
		Tier:       tierFor(h.Confidence, h.Evidence),
	}
	return h
}

// EvaluateAll evaluates every hypothesis, returning a new slice.
func EvaluateAll(hs []Hypothesis) []Hypothesis {
	out := make([]Hypothesis, len(hs))
	for i, h := range hs {
		out[i] = Evaluate(h)
	}
	return out
}

// ProvenSet returns the hypotheses whose verdicts qualify for the proven
// set. Possible hypotheses never qualify, however close to the threshold
// their confidence sits.
func ProvenSet(hs []Hypothesis) []Hypothesis {
	proven := make([]Hypothesis, 0, len(hs))
	for _, h := range hs {
		if h.Verdict.CountsAsProven() {
			proven = append(proven, h)
		}
	}
	return proven
}

func tierFor(confidence float64, ev []Evidence) verdict.Tier {
	supporting, contradicting := 0, 0
	for _, e := range ev {
		if e.Supports {
			supporting++
		} else {
			contradicting++
		}
	}

	switch {
	case confidence >= verdict.ProvenThreshold:
		if contradicting > 0 {
			return verdict.TierLikely
		}
		return verdict.TierProven
	case confidence >= verdict.PossibleThreshold:
		return verdict.TierPossible
	default:
		if supporting == 0 && contradicting > 0 {
			return verdict.TierDisproven
		}
		return verdict.TierUnlikely
	}
}
