// Package ai adapts the external transcription and summarization
// service behind two narrow interfaces. The pipeline depends only on
// these; the OpenAI implementation is one provider of them.
package ai

import (
	"context"
	"io"

	"github.com/starford/ansuz/internal/models"
)

// Transcriber converts raw audio into transcript text. An empty or
// whitespace-only transcript is a valid result, not an error; the
// pipeline decides what to do with it.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Summarizer condenses a transcript into a title and two summaries.
// A response missing any required field is an error.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (models.SummaryResult, error)
}
