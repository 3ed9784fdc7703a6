// Package testutil provides shared test helpers for setting up vaults,
// source directories and stub AI clients.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestSource creates a temporary source directory and returns its path.
func TestSource(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteAudio drops a fixture audio file into dir and returns its path.
func WriteAudio(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TranscriberFunc adapts a function to the ai.Transcriber interface.
type TranscriberFunc func(ctx context.Context, audio io.Reader, filename string) (string, error)

// Transcribe implements ai.Transcriber.
func (f TranscriberFunc) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return f(ctx, audio, filename)
}

// SummarizerFunc adapts a function to the ai.Summarizer interface.
type SummarizerFunc func(ctx context.Context, transcript string) (models.SummaryResult, error)

// Summarize implements ai.Summarizer.
func (f SummarizerFunc) Summarize(ctx context.Context, transcript string) (models.SummaryResult, error) {
	return f(ctx, transcript)
}

// EchoTranscriber returns the audio bytes as the transcript, which
// lets tests control transcripts through file content alone.
func EchoTranscriber() TranscriberFunc {
	return func(_ context.Context, audio io.Reader, _ string) (string, error) {
		data, err := io.ReadAll(audio)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// CannedSummarizer returns the same result for every transcript.
func CannedSummarizer(result models.SummaryResult) SummarizerFunc {
	return func(context.Context, string) (models.SummaryResult, error) {
		return result, nil
	}
}
