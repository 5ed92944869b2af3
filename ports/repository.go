package ports

import (
	"context"

	"switchscope/domain/core"
	"switchscope/domain/investigation"
)

// InvestigationRepository persists investigation sessions and their
// confirmation records, one active session per HCP. Starting a new
// investigation for an HCP replaces the prior session.
//
// SaveConfirmation must behave as a single-writer upsert keyed by session:
// concurrent confirms serialize and the later write wins outright.
type InvestigationRepository interface {
	SaveSession(ctx context.Context, s *investigation.Session) error
	SessionByHCP(ctx context.Context, id core.HCPID) (*investigation.Session, error)
	SaveConfirmation(ctx context.Context, record *investigation.ConfirmationRecord) error
}
