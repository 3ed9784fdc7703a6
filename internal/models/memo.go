// Package models defines the domain types for Ansuz.
package models

import "time"

// MemoFile is a candidate audio file in the source directory. Inputs
// are immutable: the pipeline reads them but never mutates or deletes
// them.
type MemoFile struct {
	Path        string    // absolute path in the source directory
	Name        string    // base name, e.g. "recording 42.m4a"
	CreatedAt   time.Time // best-effort creation time (mtime fallback)
	Fingerprint string    // content digest, the sole dedup key
}

// SummaryResult is the structured output of the summarization service.
// All three fields are required; blank fields are a service error.
type SummaryResult struct {
	Title           string `json:"title"`
	FilenameSummary string `json:"filename_summary"`
	Summary         string `json:"summary"`
}

// Status is the terminal state of one memo within a run.
type Status string

const (
	// StatusIngested means the full chain succeeded: audio copied,
	// note written, daily log linked, fingerprint recorded.
	StatusIngested Status = "ingested"
	// StatusSkipped means the transcription came back empty or blank.
	// Deliberately not a failure: no artifacts are produced and the
	// memo stays eligible for a future run.
	StatusSkipped Status = "skipped"
	// StatusFailed means a step errored. The fingerprint is withheld
	// so a retry run reattempts the memo.
	StatusFailed Status = "failed"
)

// MemoOutcome reports the terminal state of one memo.
type MemoOutcome struct {
	Source         string    `json:"source"`
	Status         Status    `json:"status"`
	NotePath       string    `json:"note_path,omitempty"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
	DailyLogPath   string    `json:"daily_log_path,omitempty"`
	ProcessedAt    time.Time `json:"processed_at"`
	Err            error     `json:"-"`
}

// ErrText returns the failure message, or "" for non-failed outcomes.
func (o MemoOutcome) ErrText() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// RunReport aggregates the outcomes of one ingestion pass.
type RunReport struct {
	Started  time.Time
	Finished time.Time
	Outcomes []MemoOutcome
}

// Counts returns the number of ingested, skipped and failed memos.
func (r RunReport) Counts() (ingested, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusIngested:
			ingested++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return ingested, skipped, failed
}
