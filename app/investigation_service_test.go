package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchscope/adapters/memory"
	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
	"switchscope/domain/investigation"
	"switchscope/internal/errors"
	"switchscope/internal/testkit"
	"switchscope/ports"
)

func newTestService() (*InvestigationService, *testkit.Kit) {
	kit := testkit.NewKit()
	return NewInvestigationService(kit, kit, kit, memory.NewRepository(), nil), kit
}

func TestInvestigationService_FullFlow(t *testing.T) {
	svc, kit := newTestService()
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	session, summary, err := svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)
	assert.Equal(t, investigation.StageObserving, session.Stage)
	assert.True(t, session.SignalSummaryReady)
	assert.NotEmpty(t, summary.Signals, "generated panel should yield at least one signal")

	session, err = svc.AdvanceToInvestigating(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, investigation.StageInvestigating, session.Stage)
	require.Len(t, session.Hypotheses, len(kit.Generated))
	for _, h := range session.Hypotheses {
		assert.True(t, h.Evaluated(), "every attached hypothesis carries a verdict")
	}

	session, err = svc.AdvanceToSynthesizing(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, investigation.StageSynthesizing, session.Stage)

	record, err := svc.Confirm(ctx, id, investigation.DefaultSelection(session), "aligns with field reports")
	require.NoError(t, err)
	assert.Equal(t, []core.HypothesisID{"hyp-access-barrier"}, record.Selected)

	strategies, err := svc.Strategies(ctx, id)
	require.NoError(t, err)
	assert.Len(t, strategies, len(kit.NBAPayload))
}

func TestInvestigationService_StrategiesGatedUntilConfirmed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	_, err := svc.Strategies(ctx, id)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIncompleteWorkflow, errors.GetCode(err))
	assert.Contains(t, err.Error(), "start a causal investigation")

	_, _, err = svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)
	_, err = svc.AdvanceToInvestigating(ctx, id)
	require.NoError(t, err)
	_, err = svc.AdvanceToSynthesizing(ctx, id)
	require.NoError(t, err)

	// Still gated: synthesis done but nothing confirmed.
	_, err = svc.Strategies(ctx, id)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIncompleteWorkflow, errors.GetCode(err))
	assert.Contains(t, err.Error(), "confirm root causes")
}

func TestInvestigationService_ConfirmValidatesSelection(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	_, _, err := svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)
	_, err = svc.AdvanceToInvestigating(ctx, id)
	require.NoError(t, err)
	_, err = svc.AdvanceToSynthesizing(ctx, id)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, id, nil, "")
	assert.True(t, core.IsInvalidSelection(err), "empty selection: %v", err)

	_, err = svc.Confirm(ctx, id, []core.HypothesisID{"hyp-phantom"}, "")
	assert.True(t, core.IsInvalidSelection(err), "unknown id: %v", err)
}

// flakyGenerator fails a fixed number of calls before delegating.
type flakyGenerator struct {
	inner    ports.HypothesisGenerator
	failures int
}

func (g *flakyGenerator) Generate(ctx context.Context, id core.HCPID) ([]hypothesis.Hypothesis, error) {
	if g.failures > 0 {
		g.failures--
		return nil, errors.FetchFailure("/api/ai/investigate", fmt.Errorf("upstream timeout"))
	}
	return g.inner.Generate(ctx, id)
}

func TestInvestigationService_TransientGeneratorFailureIsRetryable(t *testing.T) {
	kit := testkit.NewKit()
	gen := &flakyGenerator{inner: kit, failures: 1}
	svc := NewInvestigationService(kit, gen, kit, memory.NewRepository(), nil)
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	_, _, err := svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)

	_, err = svc.AdvanceToInvestigating(ctx, id)
	require.Error(t, err)
	assert.Equal(t, errors.CodeFetchFailure, errors.GetCode(err))

	// The failed upstream call must not strand the session past Observing.
	session, err := svc.AdvanceToInvestigating(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, investigation.StageInvestigating, session.Stage)
	assert.NotEmpty(t, session.Hypotheses)
}

func TestInvestigationService_ActivityFeed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	_, err := svc.Activity(ctx, id)
	assert.True(t, core.IsNotFoundError(err), "no session yet: %v", err)

	_, _, err = svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)

	feed, err := svc.Activity(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, feed.Visible, "the zero-offset line shows immediately")
	assert.Equal(t, "Pulling prescription history", feed.Visible[0].Message)
	assert.Greater(t, feed.Progress, 0.0)
}

func TestInvestigationService_ResultsForUnknownHCP(t *testing.T) {
	svc, _ := newTestService()

	results, err := svc.Results(context.Background(), "HCP-unseen")
	require.NoError(t, err, "missing session is the empty shape, not an error")
	assert.False(t, results.HasInvestigation)
	assert.False(t, results.IsConfirmed)
}

func TestInvestigationService_RestartReplacesSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	id := core.HCPID("HCP-1001")

	first, _, err := svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)
	second, _, err := svc.Start(ctx, id, "Onco-Pro")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	results, err := svc.Results(ctx, id)
	require.NoError(t, err)
	assert.True(t, results.HasInvestigation)
	assert.Empty(t, results.AllHypotheses, "fresh session starts before the deep dive")
}
