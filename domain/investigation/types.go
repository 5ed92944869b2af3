package investigation

import (
	"sync"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
)

// Stage is the workflow position of an investigation session. Transitions are
// strictly linear and forward-only; re-running an investigation starts a new
// session rather than rewinding this one.
type Stage string

const (
	StageNotStarted    Stage = "not_started"
	StageObserving     Stage = "observing"
	StageInvestigating Stage = "investigating"
	StageSynthesizing  Stage = "synthesizing"
	StageConfirmed     Stage = "confirmed" // terminal
)

// ordinal gives the linear position of each stage for transition checks.
var ordinal = map[Stage]int{
	StageNotStarted:    0,
	StageObserving:     1,
	StageInvestigating: 2,
	StageSynthesizing:  3,
	StageConfirmed:     4,
}

// ConfirmationRecord is the human reviewer's accepted root causes plus SME
// notes. Only the latest record per session is authoritative.
type ConfirmationRecord struct {
	SessionID   core.SessionID      `json:"sessionId"`
	Selected    []core.HypothesisID `json:"confirmedHypotheses"`
	SMENotes    string              `json:"smeNotes"`
	ConfirmedAt core.Timestamp      `json:"confirmedAt"`
}

// Session owns the full hypothesis set for one HCP investigation. The
// hypothesis list is set once during the Investigating stage and is immutable
// afterwards; the confirmation record references ids into that list.
type Session struct {
	ID    core.SessionID `json:"id"`
	HCPID core.HCPID     `json:"hcpId"`
	Stage Stage          `json:"stage"`

	// SignalSummaryReady flips when the Observe stage's correlation summary
	// has finished generating. It is the only guard on entering Investigating.
	SignalSummaryReady bool `json:"signalSummaryReady"`

	// ObserverNotes is optional free text captured during Observing.
	ObserverNotes string `json:"observerNotes,omitempty"`

	Hypotheses []hypothesis.Hypothesis `json:"hypotheses"`

	Confirmation *ConfirmationRecord `json:"confirmation,omitempty"`

	StartedAt   core.Timestamp  `json:"startedAt"`
	ConfirmedAt *core.Timestamp `json:"confirmedAt,omitempty"`

	mu sync.Mutex
}

// NewSession creates a fresh, not-yet-started investigation for an HCP.
func NewSession(hcpID core.HCPID) *Session {
	return &Session{
		ID:         core.SessionID(core.NewID()),
		HCPID:      hcpID,
		Stage:      StageNotStarted,
		Hypotheses: make([]hypothesis.Hypothesis, 0),
		StartedAt:  core.Now(),
	}
}

// Hypothesis looks up a hypothesis owned by the session.
func (s *Session) Hypothesis(id core.HypothesisID) (hypothesis.Hypothesis, bool) {
	for _, h := range s.Hypotheses {
		if h.ID == id {
			return h, true
		}
	}
	return hypothesis.Hypothesis{}, false
}

// ProvenHypotheses returns the subset whose verdicts qualify as proven. The UI
// uses this as the default preselection for confirmation.
func (s *Session) ProvenHypotheses() []hypothesis.Hypothesis {
	return hypothesis.ProvenSet(s.Hypotheses)
}

// ConfirmedHypotheses resolves the latest confirmation record against the
// owned hypothesis set.
func (s *Session) ConfirmedHypotheses() []hypothesis.Hypothesis {
	if s.Confirmation == nil {
		return nil
	}
	confirmed := make([]hypothesis.Hypothesis, 0, len(s.Confirmation.Selected))
	for _, id := range s.Confirmation.Selected {
		if h, ok := s.Hypothesis(id); ok {
			confirmed = append(confirmed, h)
		}
	}
	return confirmed
}
