package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/ansuz/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// errResponse is the error body for every API endpoint. Category names
// the pipeline error class when one applies, so clients can tell a
// retryable service outage from a misconfiguration.
type errResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// errorBodyFor builds an error body carrying err's pipeline category.
func errorBodyFor(msg string, err error) errResponse {
	return errResponse{Error: msg, Category: categoryOf(err)}
}

func categoryOf(err error) string {
	switch {
	case errors.Is(err, apperr.ErrConfiguration):
		return "configuration"
	case errors.Is(err, apperr.ErrHashing):
		return "hashing"
	case errors.Is(err, apperr.ErrServiceCall):
		return "service_call"
	case errors.Is(err, apperr.ErrPersistence):
		return "persistence"
	default:
		return ""
	}
}
