package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTriggersOnNewAudio(t *testing.T) {
	src := t.TempDir()

	var triggers atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, src, ".m4a", discard(), func() {
			triggers.Add(1)
		})
	}()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(src, "new.m4a"), []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for triggers.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for trigger")
		case <-time.After(100 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestIgnoresOtherExtensions(t *testing.T) {
	src := t.TempDir()

	var triggers atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Watch(ctx, src, ".m4a", discard(), func() {
			triggers.Add(1)
		})
	}()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Longer than the debounce window; no trigger may arrive.
	time.Sleep(debounce + time.Second)
	if triggers.Load() != 0 {
		t.Errorf("triggered %d times for non-audio file", triggers.Load())
	}
}
