package dailylog

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/testutil"
)

var mayDay = time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)

func TestCreatesLogWhenAbsent(t *testing.T) {
	_, store := testutil.TestVault(t)
	m := NewMerger(store, "diary")

	logRel, err := m.Append(mayDay, "notes/memos/20240501_100000_First.md")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if logRel != "diary/2024-05-01.md" {
		t.Errorf("logRel = %q", logRel)
	}

	data, err := store.Read(logRel)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "# 2024-05-01") {
		t.Error("missing date heading")
	}
	if !strings.Contains(content, "## Voice Memos") {
		t.Error("missing section heading")
	}
	if !strings.Contains(content, "- [[notes/memos/20240501_100000_First]]") {
		t.Errorf("missing link with stripped extension:\n%s", content)
	}
}

func TestAppendsInProcessingOrder(t *testing.T) {
	_, store := testutil.TestVault(t)
	m := NewMerger(store, "diary")

	if _, err := m.Append(mayDay, "notes/memos/a.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Append(mayDay, "notes/memos/b.md"); err != nil {
		t.Fatal(err)
	}

	data, _ := store.Read("diary/2024-05-01.md")
	content := string(data)
	first := strings.Index(content, "[[notes/memos/a]]")
	second := strings.Index(content, "[[notes/memos/b]]")
	if first < 0 || second < 0 {
		t.Fatalf("links missing:\n%s", content)
	}
	if first > second {
		t.Error("links out of processing order")
	}
	if strings.Count(content, "## Voice Memos") != 1 {
		t.Error("section heading duplicated")
	}
}

func TestAddsHeadingToExistingLogWithoutOne(t *testing.T) {
	_, store := testutil.TestVault(t)
	_ = store.Write("diary/2024-05-01.md", []byte("# 2024-05-01\n\nWrote some journal text today.\n"))
	m := NewMerger(store, "diary")

	if _, err := m.Append(mayDay, "notes/memos/c.md"); err != nil {
		t.Fatal(err)
	}

	data, _ := store.Read("diary/2024-05-01.md")
	content := string(data)
	if !strings.Contains(content, "Wrote some journal text today.") {
		t.Error("existing content lost")
	}
	heading := strings.Index(content, "## Voice Memos")
	link := strings.Index(content, "[[notes/memos/c]]")
	if heading < 0 || link < 0 || heading > link {
		t.Errorf("heading must precede appended link:\n%s", content)
	}
}

// The merger deliberately has no dedup of its own; calling it twice
// for the same note appends the link twice. Dedup lives upstream in
// the fingerprint check.
func TestDoubleAppendIsNotDeduplicated(t *testing.T) {
	_, store := testutil.TestVault(t)
	m := NewMerger(store, "diary")

	_, _ = m.Append(mayDay, "notes/memos/d.md")
	_, _ = m.Append(mayDay, "notes/memos/d.md")

	data, _ := store.Read("diary/2024-05-01.md")
	if strings.Count(string(data), "[[notes/memos/d]]") != 2 {
		t.Error("expected two link lines for double append")
	}
}
