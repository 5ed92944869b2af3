// Package postgres persists investigation sessions and confirmation records.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
	"switchscope/domain/investigation"
	"switchscope/ports"
)

// jsonb marshals arbitrary values into a JSONB column.
type jsonb struct {
	v interface{}
}

func (j jsonb) Value() (driver.Value, error) {
	return json.Marshal(j.v)
}

// Repository implements ports.InvestigationRepository on PostgreSQL.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a PostgreSQL-backed investigation repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

var _ ports.InvestigationRepository = (*Repository)(nil)

// sessionRow mirrors the investigation_sessions table.
type sessionRow struct {
	ID                 string         `db:"id"`
	HCPID              string         `db:"hcp_id"`
	Stage              string         `db:"stage"`
	SignalSummaryReady bool           `db:"signal_summary_ready"`
	ObserverNotes      sql.NullString `db:"observer_notes"`
	Hypotheses         []byte         `db:"hypotheses"`
	StartedAt          sql.NullTime   `db:"started_at"`
	ConfirmedAt        sql.NullTime   `db:"confirmed_at"`
}

// confirmationRow mirrors the confirmations table.
type confirmationRow struct {
	SessionID   string       `db:"session_id"`
	Selected    []byte       `db:"selected"`
	SMENotes    string       `db:"sme_notes"`
	ConfirmedAt sql.NullTime `db:"confirmed_at"`
}

// SaveSession upserts the session keyed by HCP so starting a new
// investigation replaces the prior one.
func (r *Repository) SaveSession(ctx context.Context, s *investigation.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO investigation_sessions (id, hcp_id, stage, signal_summary_ready, observer_notes, hypotheses, started_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (hcp_id) DO UPDATE SET
			id = EXCLUDED.id,
			stage = EXCLUDED.stage,
			signal_summary_ready = EXCLUDED.signal_summary_ready,
			observer_notes = EXCLUDED.observer_notes,
			hypotheses = EXCLUDED.hypotheses,
			started_at = EXCLUDED.started_at,
			confirmed_at = EXCLUDED.confirmed_at
	`, s.ID.String(), s.HCPID.String(), string(s.Stage), s.SignalSummaryReady,
		s.ObserverNotes, jsonb{s.Hypotheses}, s.StartedAt.Time(), nullTime(s.ConfirmedAt))
	return err
}

// SessionByHCP loads the active session and its latest confirmation.
func (r *Repository) SessionByHCP(ctx context.Context, id core.HCPID) (*investigation.Session, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, hcp_id, stage, signal_summary_ready, observer_notes, hypotheses, started_at, confirmed_at
		FROM investigation_sessions
		WHERE hcp_id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s := &investigation.Session{
		ID:                 core.SessionID(row.ID),
		HCPID:              core.HCPID(row.HCPID),
		Stage:              investigation.Stage(row.Stage),
		SignalSummaryReady: row.SignalSummaryReady,
		ObserverNotes:      row.ObserverNotes.String,
	}
	if len(row.Hypotheses) > 0 {
		if err := json.Unmarshal(row.Hypotheses, &s.Hypotheses); err != nil {
			return nil, err
		}
	}
	if s.Hypotheses == nil {
		s.Hypotheses = []hypothesis.Hypothesis{}
	}
	if row.StartedAt.Valid {
		s.StartedAt = core.NewTimestamp(row.StartedAt.Time)
	}
	if row.ConfirmedAt.Valid {
		ts := core.NewTimestamp(row.ConfirmedAt.Time)
		s.ConfirmedAt = &ts
	}

	record, err := r.confirmation(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Confirmation = record
	return s, nil
}

// SaveConfirmation upserts the confirmation keyed by session id. The upsert
// makes concurrent confirms last-writer-wins; records are never merged.
func (r *Repository) SaveConfirmation(ctx context.Context, record *investigation.ConfirmationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO confirmations (session_id, selected, sme_notes, confirmed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE SET
			selected = EXCLUDED.selected,
			sme_notes = EXCLUDED.sme_notes,
			confirmed_at = EXCLUDED.confirmed_at
	`, record.SessionID.String(), jsonb{record.Selected}, record.SMENotes, record.ConfirmedAt.Time())
	return err
}

func (r *Repository) confirmation(ctx context.Context, id core.SessionID) (*investigation.ConfirmationRecord, error) {
	var row confirmationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT session_id, selected, sme_notes, confirmed_at
		FROM confirmations
		WHERE session_id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record := &investigation.ConfirmationRecord{
		SessionID: core.SessionID(row.SessionID),
		SMENotes:  row.SMENotes,
	}
	if len(row.Selected) > 0 {
		if err := json.Unmarshal(row.Selected, &record.Selected); err != nil {
			return nil, err
		}
	}
	if row.ConfirmedAt.Valid {
		record.ConfirmedAt = core.NewTimestamp(row.ConfirmedAt.Time)
	}
	return record, nil
}

func nullTime(t *core.Timestamp) interface{} {
	if t == nil {
		return nil
	}
	return t.Time()
}
