package note

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// timestampLayout names attachment and note files sortably.
const timestampLayout = "20060102_150405"

// Writer persists one note and one audio copy per ingested memo. Both
// are written exactly once and never updated afterwards.
type Writer struct {
	store          storage.Provider
	attachmentsDir string // vault-relative
	notesDir       string // vault-relative
	ext            string // audio extension including the dot
	now            func() time.Time
}

// NewWriter creates a Writer. now supplies the ingestion timestamp
// used in attachment names; pass time.Now outside tests.
func NewWriter(store storage.Provider, attachmentsDir, notesDir, ext string, now func() time.Time) *Writer {
	return &Writer{
		store:          store,
		attachmentsDir: attachmentsDir,
		notesDir:       notesDir,
		ext:            ext,
		now:            now,
	}
}

// CopyAudio copies the memo's bytes into the attachment store under
// {ingestion-timestamp}_{sanitized summary}{ext} and returns the
// vault-relative path. If that name is already taken (two memos in the
// same second with the same summary) a numeric suffix disambiguates.
func (w *Writer) CopyAudio(memo models.MemoFile, filenameSummary string) (string, error) {
	base := fmt.Sprintf("%s_%s", w.now().Format(timestampLayout), Sanitize(filenameSummary))
	dest := path.Join(w.attachmentsDir, base+w.ext)

	for i := 2; ; i++ {
		taken, err := w.store.Exists(dest)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
		dest = path.Join(w.attachmentsDir, fmt.Sprintf("%s_%d%s", base, i, w.ext))
	}

	if err := w.store.CopyIn(memo.Path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// WriteNote renders the note document and writes it under
// {memo-creation-timestamp}_{sanitized title}.md. audioRel is the
// vault-relative path of the stored audio copy; the returned path is
// the vault-relative note path.
func (w *Writer) WriteNote(memo models.MemoFile, sum models.SummaryResult, transcript, audioRel string) (string, error) {
	name := fmt.Sprintf("%s_%s.md", memo.CreatedAt.Format(timestampLayout), Sanitize(sum.Title))
	rel := path.Join(w.notesDir, name)

	body := renderNote(sum.Title, sum.Summary, transcript, audioRel, memo.CreatedAt)
	if err := w.store.Write(rel, []byte(body)); err != nil {
		return "", err
	}
	return rel, nil
}

// renderNote produces the fixed note layout: title heading, date line,
// embedded audio reference, Summary section, Transcription section.
func renderNote(title, summary, transcript, audioRel string, created time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Date:** %s\n", created.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Audio:** [[%s]]\n\n", audioRel)
	fmt.Fprintf(&b, "## Summary\n%s\n\n", summary)
	fmt.Fprintf(&b, "## Transcription\n%s\n\n", transcript)
	b.WriteString("---\n*Generated automatically from voice memo*\n")
	return b.String()
}
