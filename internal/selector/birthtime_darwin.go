//go:build darwin

package selector

import (
	"os"
	"syscall"
	"time"
)

// fileCreationTime returns the file's birth time, which macOS exposes
// through the stat birthtimespec field.
func fileCreationTime(_ string, info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
