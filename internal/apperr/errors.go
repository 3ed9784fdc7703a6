// Package apperr defines the tagged error taxonomy for the ingestion
// pipeline. Callers match categories with errors.Is instead of
// inspecting message strings.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks fatal startup errors (missing credentials,
	// missing required directories). Nothing is ingested after one.
	ErrConfiguration = errors.New("configuration error")
	// ErrHashing marks per-file fingerprint failures. Non-fatal: the
	// affected file is excluded from the set being built.
	ErrHashing = errors.New("hashing error")
	// ErrServiceCall marks transcription or summarization failures,
	// including malformed service responses.
	ErrServiceCall = errors.New("service call error")
	// ErrPersistence marks I/O failures: reading the memo source
	// directory, copying audio, or writing notes and daily logs.
	ErrPersistence = errors.New("persistence error")
	// ErrUnexpected marks anything that escaped the categories above.
	ErrUnexpected = errors.New("unexpected error")
)

// Tag wraps err so that both the category and the original error chain
// stay matchable. A nil err stays nil.
func Tag(category, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", category, err)
}

// Tagf builds a new error in the given category.
func Tagf(category error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", category, fmt.Sprintf(format, args...))
}
