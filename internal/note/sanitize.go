// Package note renders per-memo notes and copies their audio into the
// attachment store.
package note

import "strings"

// maxNameLen caps sanitized names so generated paths stay portable.
const maxNameLen = 100

// placeholder replaces names that sanitize to nothing.
const placeholder = "untitled"

// invalidChars are stripped from filenames. The set covers every
// character some mainstream filesystem refuses.
const invalidChars = `<>:"/\|?*`

// Sanitize makes a service-provided title or summary safe to use as a
// filename: invalid characters removed, surrounding whitespace
// trimmed, empty results replaced with a placeholder, and the result
// truncated to a fixed maximum length.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return placeholder
	}
	if runes := []rune(out); len(runes) > maxNameLen {
		out = string(runes[:maxNameLen])
	}
	return out
}
