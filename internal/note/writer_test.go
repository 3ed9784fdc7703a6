package note

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 1, 14, 30, 5, 0, time.Local)

func testWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	vaultDir, store := testutil.TestVault(t)
	w := NewWriter(store, "attachments", "notes/memos", ".m4a", func() time.Time { return fixedNow })
	return w, vaultDir
}

func sourceMemo(t *testing.T, data []byte) models.MemoFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "recording.m4a")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return models.MemoFile{
		Path:      path,
		Name:      "recording.m4a",
		CreatedAt: time.Date(2024, 4, 28, 9, 15, 0, 0, time.Local),
	}
}

func TestCopyAudioNaming(t *testing.T) {
	w, vaultDir := testWriter(t)
	memo := sourceMemo(t, []byte("audio bytes"))

	rel, err := w.CopyAudio(memo, "weekly planning")
	if err != nil {
		t.Fatalf("CopyAudio: %v", err)
	}
	if rel != "attachments/20240501_143005_weekly planning.m4a" {
		t.Errorf("rel = %q", rel)
	}
	data, err := os.ReadFile(filepath.Join(vaultDir, rel))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("copied content = %q", data)
	}
}

func TestCopyAudioCollisionSuffix(t *testing.T) {
	w, _ := testWriter(t)
	first := sourceMemo(t, []byte("one"))
	second := sourceMemo(t, []byte("two"))

	relA, err := w.CopyAudio(first, "same summary")
	if err != nil {
		t.Fatal(err)
	}
	relB, err := w.CopyAudio(second, "same summary")
	if err != nil {
		t.Fatal(err)
	}
	if relA == relB {
		t.Fatalf("colliding names not disambiguated: %q", relA)
	}
	if !strings.HasSuffix(relB, "_2.m4a") {
		t.Errorf("second copy = %q, want numeric suffix", relB)
	}
}

func TestCopyAudioSanitizesSummary(t *testing.T) {
	w, _ := testWriter(t)
	memo := sourceMemo(t, []byte("x"))

	rel, err := w.CopyAudio(memo, `to/do: list?`)
	if err != nil {
		t.Fatal(err)
	}
	if rel != "attachments/20240501_143005_todo list.m4a" {
		t.Errorf("rel = %q", rel)
	}
}

func TestWriteNoteLayout(t *testing.T) {
	w, vaultDir := testWriter(t)
	memo := sourceMemo(t, []byte("x"))
	sum := models.SummaryResult{
		Title:           "Weekly Planning",
		FilenameSummary: "weekly planning",
		Summary:         "Planning the week ahead.",
	}

	rel, err := w.WriteNote(memo, sum, "Let me think about the week.", "attachments/20240501_143005_weekly planning.m4a")
	if err != nil {
		t.Fatalf("WriteNote: %v", err)
	}
	if rel != "notes/memos/20240428_091500_Weekly Planning.md" {
		t.Errorf("rel = %q", rel)
	}

	body, err := os.ReadFile(filepath.Join(vaultDir, rel))
	if err != nil {
		t.Fatal(err)
	}
	content := string(body)

	// Sections must appear in fixed order.
	order := []string{
		"# Weekly Planning",
		"**Date:** 2024-04-28 09:15:00",
		"**Audio:** [[attachments/20240501_143005_weekly planning.m4a]]",
		"## Summary\nPlanning the week ahead.",
		"## Transcription\nLet me think about the week.",
		"*Generated automatically from voice memo*",
	}
	last := -1
	for _, part := range order {
		idx := strings.Index(content, part)
		if idx < 0 {
			t.Fatalf("note missing %q:\n%s", part, content)
		}
		if idx < last {
			t.Errorf("%q out of order", part)
		}
		last = idx
	}
}
