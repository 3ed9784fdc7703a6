// Package ledger provides SQLite-backed ingestion history. The ledger
// records what each run did; it is reporting only and is never
// consulted for deduplication, which always rebuilds from stored
// attachment bytes.
package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	ingested    INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS memos (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	source          TEXT NOT NULL,
	status          TEXT NOT NULL,
	note_path       TEXT NOT NULL DEFAULT '',
	attachment_path TEXT NOT NULL DEFAULT '',
	daily_log_path  TEXT NOT NULL DEFAULT '',
	error           TEXT NOT NULL DEFAULT '',
	processed_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_memos_run ON memos(run_id);
`

// DB wraps a sql.DB with ledger-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
