package investigation

import (
	"fmt"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
)

// The workflow advances only through these named transitions. No stage may be
// skipped and none may be revisited; state is a single Stage value, never a
// set of booleans.

// Start moves NotStarted -> Observing. It has no preconditions beyond the
// session not having been started already.
func (s *Session) Start() error {
	return s.advance(StageNotStarted, StageObserving, nil)
}

// MarkSignalSummaryReady records completion of the Observe stage's
// signal-correlation summary. Idempotent; legal in any stage at or past
// Observing.
func (s *Session) MarkSignalSummaryReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ordinal[s.Stage] < ordinal[StageObserving] {
		return fmt.Errorf("%w: signal summary before observation started", core.ErrStageGuardNotMet)
	}
	s.SignalSummaryReady = true
	return nil
}

// RecordObserverNotes captures optional free-text input during Observing.
// Notes are accepted but never required for progression.
func (s *Session) RecordObserverNotes(notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Stage != StageObserving {
		return fmt.Errorf("%w: observer notes outside observing stage", core.ErrStageGuardNotMet)
	}
	s.ObserverNotes = notes
	return nil
}

// CanBeginInvestigating checks the Observing -> Investigating preconditions
// without advancing the session.
func (s *Session) CanBeginInvestigating() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Stage != StageObserving {
		return core.NewTransitionError(string(s.Stage), string(StageInvestigating))
	}
	if !s.SignalSummaryReady {
		return fmt.Errorf("%w: signal-correlation summary still generating", core.ErrStageGuardNotMet)
	}
	return nil
}

// BeginInvestigating moves Observing -> Investigating. Requires the
// signal-correlation summary to have completed generating.
func (s *Session) BeginInvestigating() error {
	return s.advance(StageObserving, StageInvestigating, func() error {
		if !s.SignalSummaryReady {
			return fmt.Errorf("%w: signal-correlation summary still generating", core.ErrStageGuardNotMet)
		}
		return nil
	})
}

// AttachHypotheses installs the externally generated hypothesis set during the
// Investigating stage. The set may be attached only once; the session owns it
// exclusively from then on.
func (s *Session) AttachHypotheses(hs []hypothesis.Hypothesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Stage != StageInvestigating {
		return fmt.Errorf("%w: hypotheses outside investigating stage", core.ErrStageGuardNotMet)
	}
	if len(s.Hypotheses) > 0 {
		return fmt.Errorf("%w: hypothesis set already attached", core.ErrStageGuardNotMet)
	}
	s.Hypotheses = append([]hypothesis.Hypothesis(nil), hs...)
	return nil
}

// BeginSynthesizing moves Investigating -> Synthesizing. Requires a verdict on
// every hypothesis generated in this stage.
func (s *Session) BeginSynthesizing() error {
	return s.advance(StageInvestigating, StageSynthesizing, func() error {
		if len(s.Hypotheses) == 0 {
			return fmt.Errorf("%w: no hypotheses generated", core.ErrStageGuardNotMet)
		}
		for _, h := range s.Hypotheses {
			if !h.Evaluated() {
				return fmt.Errorf("%w: hypothesis %s has no verdict", core.ErrStageGuardNotMet, h.ID)
			}
		}
		return nil
	})
}

// advance performs a guarded linear transition. Attempts to skip or rewind
// stages fail with ErrInvalidTransition.
func (s *Session) advance(from, to Stage, guard func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Stage != from {
		return core.NewTransitionError(string(s.Stage), string(to))
	}
	if guard != nil {
		if err := guard(); err != nil {
			return err
		}
	}
	s.Stage = to
	return nil
}
