//go:build !darwin

package selector

import (
	"os"
	"time"
)

// fileCreationTime falls back to the modification time on platforms
// whose stat results carry no birth time. For append-once voice memo
// recordings the two are close enough for date-window filtering.
func fileCreationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
