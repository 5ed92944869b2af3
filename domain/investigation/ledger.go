package investigation

import (
	"fmt"

	"switchscope/domain/core"
)

// Confirm records the reviewer's selected root causes and moves the session to
// its terminal Confirmed stage. This is the only transition that writes the
// confirmation record.
//
// The selection must be non-empty and every id must reference a hypothesis
// owned by the session; unknown ids fail with ErrInvalidSelection rather than
// being dropped. Reviewers may confirm hypotheses below the proven tier - the
// proven set is only a default preselection, not a constraint.
//
// Confirm is idempotent per session: a later call replaces the prior selection
// and notes outright. Calls are serialized on the session; when two race, the
// later caller's record wins and the records are never merged.
func (s *Session) Confirm(selected []core.HypothesisID, smeNotes string) (*ConfirmationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageSynthesizing && s.Stage != StageConfirmed {
		return nil, core.NewTransitionError(string(s.Stage), string(StageConfirmed))
	}
	if len(selected) == 0 {
		return nil, core.NewSelectionError("no hypotheses selected")
	}
	for _, id := range selected {
		if !s.ownsHypothesis(id) {
			return nil, core.NewSelectionError(fmt.Sprintf("unknown hypothesis id %s", id))
		}
	}

	now := core.Now()
	record := &ConfirmationRecord{
		SessionID:   s.ID,
		Selected:    append([]core.HypothesisID(nil), selected...),
		SMENotes:    smeNotes,
		ConfirmedAt: now,
	}
	s.Confirmation = record
	s.Stage = StageConfirmed
	s.ConfirmedAt = &now
	return record, nil
}

func (s *Session) ownsHypothesis(id core.HypothesisID) bool {
	for _, h := range s.Hypotheses {
		if h.ID == id {
			return true
		}
	}
	return false
}
