package note

import (
	"strings"
	"testing"
)

func TestSanitizeStripsInvalidChars(t *testing.T) {
	got := Sanitize(`My/Note:"Title"`)
	if got != "MyNoteTitle" {
		t.Errorf("Sanitize = %q, want MyNoteTitle", got)
	}
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	got := Sanitize("  spaced out  ")
	if got != "spaced out" {
		t.Errorf("Sanitize = %q", got)
	}
}

func TestSanitizeAllInvalidYieldsPlaceholder(t *testing.T) {
	for _, in := range []string{`<>:"/\|?*`, "", "   "} {
		if got := Sanitize(in); got != "untitled" {
			t.Errorf("Sanitize(%q) = %q, want untitled", in, got)
		}
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Sanitize(long)
	if len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestSanitizeKeepsValidPunctuation(t *testing.T) {
	got := Sanitize("Meeting notes, 3pm - budget & plans!")
	if got != "Meeting notes, 3pm - budget & plans!" {
		t.Errorf("Sanitize = %q", got)
	}
}
