// Package selector builds the ordered work list for an ingestion run:
// audio files in the source directory that pass the optional creation
// date floor and are not already present in the attachment store.
package selector

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/dedup"
	"github.com/starford/ansuz/internal/models"
)

// Selector scans a flat source directory for one audio extension.
type Selector struct {
	dir   string
	ext   string
	floor time.Time // zero means no date floor

	// Seams for tests; New wires the real implementations.
	hash    func(path string) (string, error)
	created func(path string, info os.FileInfo) time.Time

	logger *slog.Logger
}

// New creates a Selector over dir for files ending in ext. A non-zero
// floor discards files created strictly before it.
func New(dir, ext string, floor time.Time, logger *slog.Logger) *Selector {
	return &Selector{
		dir:     dir,
		ext:     ext,
		floor:   floor,
		hash:    checksum.File,
		created: fileCreationTime,
		logger:  logger,
	}
}

// Select returns the candidates for this run in directory enumeration
// order. Files excluded by the date floor are never hashed. Files that
// fail to hash are logged as warnings and excluded; they are neither
// treated as new nor as duplicates.
func (s *Selector) Select(processed *dedup.ProcessedSet) ([]models.MemoFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("selector: read source dir %s: %w", s.dir, err)
	}

	var out []models.MemoFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		info, err := e.Info()
		if err != nil {
			s.logger.Warn("could not stat memo, excluding",
				slog.String("file", e.Name()),
				slog.String("error", err.Error()))
			continue
		}

		created := s.created(path, info)
		if !s.floor.IsZero() && created.Before(s.floor) {
			continue
		}

		fp, err := s.hash(path)
		if err != nil {
			s.logger.Warn("could not hash memo, excluding",
				slog.String("file", e.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if processed.Contains(fp) {
			continue
		}

		out = append(out, models.MemoFile{
			Path:        path,
			Name:        e.Name(),
			CreatedAt:   created,
			Fingerprint: fp,
		})
	}
	return out, nil
}
