package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/models"
)

// ErrRunNotFound is returned when a run id has no ledger entry.
var ErrRunNotFound = errors.New("ledger: run not found")

// RunRow summarizes one recorded ingestion run.
type RunRow struct {
	ID       string    `json:"id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Ingested int       `json:"ingested"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
}

// MemoRow is one memo outcome within a recorded run.
type MemoRow struct {
	RunID          string        `json:"run_id"`
	Source         string        `json:"source"`
	Status         models.Status `json:"status"`
	NotePath       string        `json:"note_path,omitempty"`
	AttachmentPath string        `json:"attachment_path,omitempty"`
	DailyLogPath   string        `json:"daily_log_path,omitempty"`
	Error          string        `json:"error,omitempty"`
	ProcessedAt    time.Time     `json:"processed_at"`
}

// RecordRun persists a run report and its per-memo outcomes in one
// transaction, returning the generated run id.
func (db *DB) RecordRun(report models.RunReport) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("ledger: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	id := uuid.NewString()
	ingested, skipped, failed := report.Counts()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, finished_at, ingested, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, report.Started, report.Finished, ingested, skipped, failed)
	if err != nil {
		return "", fmt.Errorf("ledger: insert run: %w", err)
	}

	if len(report.Outcomes) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO memos (run_id, source, status, note_path, attachment_path, daily_log_path, error, processed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return "", fmt.Errorf("ledger: prepare memo insert: %w", err)
		}
		defer stmt.Close()
		for _, o := range report.Outcomes {
			if _, err := stmt.Exec(id, o.Source, string(o.Status), o.NotePath, o.AttachmentPath, o.DailyLogPath, o.ErrText(), o.ProcessedAt); err != nil {
				return "", fmt.Errorf("ledger: insert memo: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("ledger: commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, finished_at, ingested, skipped, failed
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Started, &r.Finished, &r.Ingested, &r.Skipped, &r.Failed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun returns one run and its memo outcomes.
func (db *DB) GetRun(id string) (RunRow, []MemoRow, error) {
	var r RunRow
	err := db.conn.QueryRow(`
		SELECT id, started_at, finished_at, ingested, skipped, failed
		FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.Started, &r.Finished, &r.Ingested, &r.Skipped, &r.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRow{}, nil, ErrRunNotFound
	}
	if err != nil {
		return RunRow{}, nil, fmt.Errorf("ledger: get run: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT run_id, source, status, note_path, attachment_path, daily_log_path, error, processed_at
		FROM memos WHERE run_id = ? ORDER BY processed_at
	`, id)
	if err != nil {
		return RunRow{}, nil, fmt.Errorf("ledger: get run memos: %w", err)
	}
	defer rows.Close()

	var memos []MemoRow
	for rows.Next() {
		var m MemoRow
		var status string
		if err := rows.Scan(&m.RunID, &m.Source, &status, &m.NotePath, &m.AttachmentPath, &m.DailyLogPath, &m.Error, &m.ProcessedAt); err != nil {
			return RunRow{}, nil, err
		}
		m.Status = models.Status(status)
		memos = append(memos, m)
	}
	return r, memos, rows.Err()
}

// RecentNotes returns vault-relative note paths of the most recently
// ingested memos, newest first.
func (db *DB) RecentNotes(limit int) ([]string, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT note_path FROM memos
		WHERE status = ? AND note_path != ''
		ORDER BY processed_at DESC LIMIT ?
	`, string(models.StatusIngested), limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: recent notes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
