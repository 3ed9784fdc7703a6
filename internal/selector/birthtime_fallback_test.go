//go:build !darwin

package selector

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCreationTimeFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.m4a")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Date(2024, 2, 15, 9, 30, 0, 0, time.Local)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	got := fileCreationTime(path, info)
	if !got.Equal(past) {
		t.Errorf("fileCreationTime = %v, want mtime %v", got, past)
	}
}
