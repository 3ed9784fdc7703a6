// Package watch triggers ingestion passes when new audio lands in the
// source directory.
package watch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches a burst of file events (a recording still being
// copied in produces several writes) into one trigger.
const debounce = 2 * time.Second

// Watch starts an fsnotify watcher on the flat source directory and
// calls trigger after each debounced burst of audio-file events, until
// ctx is cancelled. The source directory is watched non-recursively,
// matching how the selector scans it.
func Watch(ctx context.Context, sourceDir, ext string, logger *slog.Logger, trigger func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(sourceDir); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("source", sourceDir))

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			logger.Info("watcher: source changed, triggering ingestion")
			trigger()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ext) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				logger.Debug("watcher: audio event",
					slog.String("path", ev.Name),
					slog.String("op", ev.Op.String()))
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", werr.Error()))
		}
	}
}
