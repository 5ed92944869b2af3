package app

import (
	"context"
	"time"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
	"switchscope/domain/investigation"
	"switchscope/domain/reveal"
	"switchscope/domain/timeline"
	"switchscope/internal"
	"switchscope/internal/errors"
	"switchscope/internal/signals"
	"switchscope/ports"
)

// InvestigationService drives the staged workflow for one HCP at a time:
// start observation, advance through the deep dive, take the reviewer's
// confirmation, and gate strategy output.
type InvestigationService struct {
	reader    ports.DataReader
	generator ports.HypothesisGenerator
	provider  ports.StrategyProvider
	repo      ports.InvestigationRepository
	sink      ports.ConfirmationSink // optional upstream mirror
	log       *internal.Logger
}

// NewInvestigationService wires the service. sink may be nil when no external
// confirmation mirror is configured.
func NewInvestigationService(reader ports.DataReader, generator ports.HypothesisGenerator, provider ports.StrategyProvider, repo ports.InvestigationRepository, sink ports.ConfirmationSink) *InvestigationService {
	return &InvestigationService{
		reader:    reader,
		generator: generator,
		provider:  provider,
		repo:      repo,
		sink:      sink,
		log:       internal.DefaultLogger.With("investigation"),
	}
}

// Start creates a fresh session for the HCP and enters Observing. Any prior
// session for the HCP is replaced; stage history is never rewound in place.
// The observation's signal-correlation summary is computed from the fetched
// bundle and marks the session ready to advance.
func (s *InvestigationService) Start(ctx context.Context, id core.HCPID, targetProduct string) (*investigation.Session, signals.Summary, error) {
	session := investigation.NewSession(id)
	if err := session.Start(); err != nil {
		return nil, signals.Summary{}, err
	}

	bundle, err := fetchBundle(ctx, s.reader, id)
	if err != nil {
		return nil, signals.Summary{}, err
	}

	points := timeline.BuildTimeline(bundle.Patients, bundle.History, targetProduct)
	aligned := timeline.AlignEvents(bundle.Events, points)
	summary := signals.Summarize(id, points, aligned, bundle.Trends)

	if err := session.MarkSignalSummaryReady(); err != nil {
		return nil, signals.Summary{}, err
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, signals.Summary{}, errors.Wrap(err, "save session")
	}
	s.log.Info("started investigation %s for hcp %s (%d signals)", session.ID, id, len(summary.Signals))
	return session, summary, nil
}

// AdvanceToInvestigating moves the session into the deep dive: the external
// service generates the hypothesis set, verdicts are assigned locally, and
// the set is attached to the session.
func (s *InvestigationService) AdvanceToInvestigating(ctx context.Context, id core.HCPID) (*investigation.Session, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil {
		return nil, err
	}

	// The upstream call runs before the transition; a failed fetch leaves the
	// session in Observing and the advance retryable.
	if err := session.CanBeginInvestigating(); err != nil {
		return nil, err
	}
	generated, err := s.generator.Generate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.BeginInvestigating(); err != nil {
		return nil, err
	}
	if err := session.AttachHypotheses(hypothesis.EvaluateAll(generated)); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	return session, nil
}

// AdvanceToSynthesizing moves the session to synthesis once every hypothesis
// carries a verdict.
func (s *InvestigationService) AdvanceToSynthesizing(ctx context.Context, id core.HCPID) (*investigation.Session, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.BeginSynthesizing(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	return session, nil
}

// Confirm records the reviewer's selected root causes, closing the workflow.
// The selection is validated against the session before anything is written;
// a repeat confirmation replaces the previous record.
func (s *InvestigationService) Confirm(ctx context.Context, id core.HCPID, selected []core.HypothesisID, smeNotes string) (*investigation.ConfirmationRecord, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil {
		return nil, err
	}

	record, err := session.Confirm(selected, smeNotes)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	if err := s.repo.SaveConfirmation(ctx, record); err != nil {
		return nil, errors.Wrap(err, "save confirmation")
	}

	if s.sink != nil {
		count, err := s.sink.ConfirmInvestigation(ctx, id, record.Selected, record.SMENotes)
		if err != nil {
			return nil, err
		}
		s.log.Info("mirrored confirmation for hcp %s upstream (%d confirmed)", id, count)
	}
	return record, nil
}

// observationLog is the Observe stage's precomputed activity feed. Lines are
// revealed purely by elapsed time since the session started, so reloading the
// view reconstructs the same state.
var observationLog = []reveal.Activity{
	{Offset: 0, Message: "Pulling prescription history"},
	{Offset: 600 * time.Millisecond, Message: "Building cohort survival timeline"},
	{Offset: 1400 * time.Millisecond, Message: "Aligning clinical and payer events"},
	{Offset: 2300 * time.Millisecond, Message: "Correlating signals with survivor loss"},
	{Offset: 3200 * time.Millisecond, Message: "Signal summary ready"},
}

// ActivityFeed is the reveal state of a session's observation activity.
type ActivityFeed struct {
	Visible  []reveal.Activity `json:"visible"`
	Progress float64           `json:"progress"`
	Done     bool              `json:"done"`
}

// Activity returns the observation activity revealed so far for the HCP's
// session, derived from elapsed time since the session started.
func (s *InvestigationService) Activity(ctx context.Context, id core.HCPID) (ActivityFeed, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil {
		return ActivityFeed{}, err
	}
	elapsed := time.Since(session.StartedAt.Time())
	return ActivityFeed{
		Visible:  reveal.Visible(observationLog, elapsed),
		Progress: reveal.Progress(observationLog, elapsed),
		Done:     reveal.Done(observationLog, elapsed),
	}, nil
}

// Results serializes the current workflow and ledger state. An HCP with no
// session yields the empty no-investigation shape, not an error.
func (s *InvestigationService) Results(ctx context.Context, id core.HCPID) (investigation.Results, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return investigation.Results{}, nil
		}
		return investigation.Results{}, err
	}
	return investigation.ResultsFor(session), nil
}

// Strategies returns the NBA payload, but only once the gate is open. The
// gate is re-evaluated on every call; a closed gate yields IncompleteWorkflow
// guidance naming the missing step, never partial data.
func (s *InvestigationService) Strategies(ctx context.Context, id core.HCPID) ([]ports.Strategy, error) {
	session, err := s.repo.SessionByHCP(ctx, id)
	if err != nil && !core.IsNotFoundError(err) {
		return nil, err
	}
	if !investigation.CanShowStrategies(session) {
		return nil, errors.IncompleteWorkflow(investigation.MissingStep(session))
	}
	return s.provider.Strategies(ctx, id)
}
