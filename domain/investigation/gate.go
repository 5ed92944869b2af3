package investigation

import (
	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
)

// Results is the serialized workflow + confirmation state the dashboard API
// exchanges with clients and the upstream service.
type Results struct {
	HasInvestigation bool                    `json:"hasInvestigation"`
	AllHypotheses    []hypothesis.Hypothesis `json:"allHypotheses"`
	Proven           []hypothesis.Hypothesis `json:"provenHypotheses"`
	Confirmed        []hypothesis.Hypothesis `json:"confirmedHypotheses"`
	IsConfirmed      bool                    `json:"isConfirmed"`
	SMENotes         string                  `json:"smeNotes,omitempty"`
}

// ResultsFor serializes a session into the wire shape. A nil session means no
// investigation exists yet.
func ResultsFor(s *Session) Results {
	if s == nil {
		return Results{}
	}
	return Results{
		HasInvestigation: s.Stage != StageNotStarted,
		AllHypotheses:    s.Hypotheses,
		Proven:           s.ProvenHypotheses(),
		Confirmed:        s.ConfirmedHypotheses(),
		IsConfirmed:      s.Stage == StageConfirmed,
		SMENotes:         smeNotes(s),
	}
}

func smeNotes(s *Session) string {
	if s.Confirmation == nil {
		return ""
	}
	return s.Confirmation.SMENotes
}

// CanShowStrategies is the single gate on downstream strategy visibility: an
// investigation exists, the workflow reached its terminal stage, and the
// reviewer confirmed at least one root cause. Pure; callers must re-evaluate
// it on every request rather than caching the answer.
func CanShowStrategies(s *Session) bool {
	return s != nil &&
		s.Stage == StageConfirmed &&
		s.Confirmation != nil &&
		len(s.Confirmation.Selected) > 0
}

// GateFromResults applies the same predicate to the serialized wire shape.
func GateFromResults(r Results) bool {
	return r.HasInvestigation && r.IsConfirmed && len(r.Confirmed) > 0
}

// MissingStep names what still blocks strategy visibility, for the "not ready"
// guidance shown instead of an empty strategy panel.
func MissingStep(s *Session) string {
	switch {
	case s == nil || s.Stage == StageNotStarted:
		return "start a causal investigation for this HCP"
	case s.Stage == StageObserving:
		return "complete the observation stage"
	case s.Stage == StageInvestigating:
		return "complete the hypothesis deep dive"
	case s.Stage == StageSynthesizing:
		return "confirm root causes to unlock strategies"
	case s.Confirmation == nil || len(s.Confirmation.Selected) == 0:
		return "confirm at least one root cause"
	default:
		return ""
	}
}

// DefaultSelection is the ids the UI preselects for confirmation: exactly the
// proven set, never possible-tier hypotheses.
func DefaultSelection(s *Session) []core.HypothesisID {
	proven := s.ProvenHypotheses()
	ids := make([]core.HypothesisID, 0, len(proven))
	for _, h := range proven {
		ids = append(ids, h.ID)
	}
	return ids
}
