// Package memory is the in-process InvestigationRepository used by tests and
// demo mode (no DATABASE_URL configured).
package memory

import (
	"context"
	"sync"

	"switchscope/domain/core"
	"switchscope/domain/investigation"
	"switchscope/ports"
)

// Repository keeps one active session per HCP in memory.
type Repository struct {
	mu    sync.RWMutex
	byHCP map[core.HCPID]*investigation.Session
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{byHCP: make(map[core.HCPID]*investigation.Session)}
}

var _ ports.InvestigationRepository = (*Repository)(nil)

// SaveSession stores the session, replacing any prior session for the HCP.
func (r *Repository) SaveSession(ctx context.Context, s *investigation.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHCP[s.HCPID] = s
	return nil
}

// SessionByHCP returns the active session for an HCP.
func (r *Repository) SessionByHCP(ctx context.Context, id core.HCPID) (*investigation.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byHCP[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// SaveConfirmation records the latest confirmation for a session. The session
// already carries the record; this keeps the stored copy authoritative and
// last-writer-wins.
func (r *Repository) SaveConfirmation(ctx context.Context, record *investigation.ConfirmationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byHCP {
		if s.ID == record.SessionID {
			s.Confirmation = record
			return nil
		}
	}
	return core.ErrSessionNotFound
}
