// Package dedup tracks which memo contents are already represented in
// the attachment store. The set is rebuilt from stored bytes at the
// start of every run; durability lives in the attachment files
// themselves, never in a separate index.
package dedup

import (
	"log/slog"
	"path"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/storage"
)

// ProcessedSet is the in-memory set of fingerprints already stored.
// Membership is best-effort conservative: a file that cannot be hashed
// is excluded, so the set is never a superset of what is on disk. The
// worst consequence is reprocessing a duplicate, never skipping a new
// memo.
type ProcessedSet struct {
	fingerprints map[string]struct{}
}

// Build hashes every audio file directly in dir (non-recursive) and
// returns the resulting set. Per-file hash failures are logged as
// warnings and the file is left out; they do not abort the run.
func Build(store storage.Provider, dir, ext string, logger *slog.Logger) (*ProcessedSet, error) {
	names, err := store.List(dir, ext)
	if err != nil {
		return nil, err
	}

	s := &ProcessedSet{fingerprints: make(map[string]struct{}, len(names))}
	for _, name := range names {
		data, err := store.Read(path.Join(dir, name))
		if err != nil {
			logger.Warn("could not hash stored audio, excluding from processed set",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}
		s.fingerprints[checksum.Sum(data)] = struct{}{}
	}

	logger.Info("processed set built",
		slog.String("dir", dir),
		slog.Int("stored_files", len(names)),
		slog.Int("fingerprints", len(s.fingerprints)))
	return s, nil
}

// Contains reports whether the fingerprint is already stored.
func (s *ProcessedSet) Contains(fingerprint string) bool {
	_, ok := s.fingerprints[fingerprint]
	return ok
}

// Add records a fingerprint after its memo was fully ingested.
func (s *ProcessedSet) Add(fingerprint string) {
	s.fingerprints[fingerprint] = struct{}{}
}

// Len returns the number of known fingerprints.
func (s *ProcessedSet) Len() int {
	return len(s.fingerprints)
}
