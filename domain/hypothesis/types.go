package hypothesis

import (
	"switchscope/domain/core"
	"switchscope/domain/verdict"
)

// CausalStep is one link in a hypothesis's cause-to-effect chain.
type CausalStep struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
}

// Evidence is one finding for or against a hypothesis. Strength is 0-100.
type Evidence struct {
	Source   string  `json:"source"`
	Finding  string  `json:"finding"`
	Supports bool    `json:"supportsHypothesis"`
	Strength float64 `json:"strength"`
}

// Hypothesis is one candidate root cause under investigation. The confidence
// score arrives from the external evidence-scoring service; this package only
// classifies it.
type Hypothesis struct {
	ID          core.HypothesisID `json:"id"`
	Title       string            `json:"title"`
	CausalChain []CausalStep      `json:"causalChain"`
	Evidence    []Evidence        `json:"evidence"`
	Confidence  float64           `json:"finalConfidence"`

	// Verdict is populated by Evaluate, never supplied upstream.
	Verdict verdict.Verdict `json:"verdict"`
}

// Evaluated reports whether the hypothesis has been through Evaluate.
func (h Hypothesis) Evaluated() bool {
	return h.Verdict.Tier != ""
}
