package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/ledger"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(db *ledger.DB, ingest IngestFunc, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(db, ingest)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Run history.
	r.Get("/runs", h.ListRuns)
	r.Get("/runs/{id}", h.GetRun)

	// Generated notes.
	r.Get("/notes/recent", h.RecentNotes)

	// Manual ingestion trigger.
	r.Post("/ingest", h.TriggerIngest)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
