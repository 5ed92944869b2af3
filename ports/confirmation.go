package ports

import (
	"context"

	"switchscope/domain/core"
)

// ConfirmationSink mirrors a confirmation record to the external service
// after the local ledger write succeeds. Returns the confirmed count the
// service reports.
type ConfirmationSink interface {
	ConfirmInvestigation(ctx context.Context, id core.HCPID, selected []core.HypothesisID, smeNotes string) (int, error)
}
