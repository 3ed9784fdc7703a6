// Package dailylog maintains the one-per-date log documents that
// aggregate links to the day's generated notes.
package dailylog

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/storage"
)

// sectionHeading is the heading under which note links accumulate.
const sectionHeading = "## Voice Memos"

// Merger appends note links into date-keyed daily logs.
type Merger struct {
	store    storage.Provider
	diaryDir string // vault-relative
}

// NewMerger creates a Merger writing into diaryDir.
func NewMerger(store storage.Provider, diaryDir string) *Merger {
	return &Merger{store: store, diaryDir: diaryDir}
}

// Append adds a link to noteRel (vault-relative, extension stripped in
// the link) to the daily log for date, creating the log if absent. The
// whole file is read and rewritten; there are no partial edits.
//
// Append has no dedup of its own: invoked twice for the same note it
// appends the link twice. The pipeline's upstream fingerprint check is
// the only guard against that.
func (m *Merger) Append(date time.Time, noteRel string) (string, error) {
	logRel := path.Join(m.diaryDir, date.Format("2006-01-02")+".md")
	link := fmt.Sprintf("- [[%s]]", strings.TrimSuffix(noteRel, ".md"))

	exists, err := m.store.Exists(logRel)
	if err != nil {
		return "", err
	}

	var content string
	if exists {
		data, err := m.store.Read(logRel)
		if err != nil {
			return "", err
		}
		content = string(data)
		if !strings.Contains(content, sectionHeading) {
			content += "\n\n" + sectionHeading + "\n"
		}
		content += link + "\n"
	} else {
		content = fmt.Sprintf("# %s\n\n%s\n%s\n", date.Format("2006-01-02"), sectionHeading, link)
	}

	if err := m.store.Write(logRel, []byte(content)); err != nil {
		return "", err
	}
	return logRel, nil
}
