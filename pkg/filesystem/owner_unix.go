//go:build unix

package filesystem

import (
	"io/fs"
	"syscall"
)

// owner returns the numeric owner of a file when the underlying filesystem
// exposes it. In-memory filesystems do not.
func owner(info fs.FileInfo) (int, int, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}
