package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/ledger"
	"github.com/starford/ansuz/internal/models"
)

// IngestFunc runs one ingestion pass. The serve-mode session provides
// an implementation that serializes passes behind its mutex.
type IngestFunc func(ctx context.Context) (models.RunReport, error)

// Handler holds API route handlers.
type Handler struct {
	db     *ledger.DB
	ingest IngestFunc
}

// NewHandler creates a new Handler.
func NewHandler(db *ledger.DB, ingest IngestFunc) *Handler {
	return &Handler{db: db, ingest: ingest}
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.db.ListRuns(limit)
	if err != nil {
		slog.Error("list runs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runs": runs,
	})
}

// GetRun handles GET /api/runs/{id}.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, memos, err := h.db.GetRun(id)
	if err != nil {
		if errors.Is(err, ledger.ErrRunNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get run failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run":   run,
		"memos": memos,
	})
}

// RecentNotes handles GET /api/notes/recent.
func (h *Handler) RecentNotes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notes, err := h.db.RecentNotes(limit)
	if err != nil {
		slog.Error("recent notes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notes": notes,
	})
}

// TriggerIngest handles POST /api/ingest: runs one pass synchronously
// and returns its counts.
func (h *Handler) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	report, err := h.ingest(r.Context())
	if err != nil {
		slog.Error("ingest failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBodyFor("ingestion failed", err))
		return
	}
	ingested, skipped, failed := report.Counts()
	writeJSON(w, http.StatusOK, map[string]int{
		"ingested": ingested,
		"skipped":  skipped,
		"failed":   failed,
	})
}
