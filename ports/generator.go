package ports

import (
	"context"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
)

// HypothesisGenerator produces the candidate root-cause set for an HCP.
// Generation (evidence retrieval, confidence scoring, narrative text) happens
// in an external AI service; hypotheses arrive as finished objects with 0-100
// confidence scores and this core only classifies and gates them.
type HypothesisGenerator interface {
	Generate(ctx context.Context, id core.HCPID) ([]hypothesis.Hypothesis, error)
}
