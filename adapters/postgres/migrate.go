package postgres

import (
	"github.com/jmoiron/sqlx"

	"switchscope/internal/errors"
)

// schema creates the session-state tables. One active session per HCP; the
// confirmation table is keyed by session so the latest confirm replaces the
// prior record.
const schema = `
CREATE TABLE IF NOT EXISTS investigation_sessions (
	id TEXT NOT NULL,
	hcp_id TEXT PRIMARY KEY,
	stage TEXT NOT NULL,
	signal_summary_ready BOOLEAN NOT NULL DEFAULT FALSE,
	observer_notes TEXT,
	hypotheses JSONB NOT NULL DEFAULT '[]',
	started_at TIMESTAMPTZ,
	confirmed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS confirmations (
	session_id TEXT PRIMARY KEY,
	selected JSONB NOT NULL DEFAULT '[]',
	sme_notes TEXT NOT NULL DEFAULT '',
	confirmed_at TIMESTAMPTZ
);
`

// Migrate applies the schema.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "apply session-store schema")
	}
	return nil
}
