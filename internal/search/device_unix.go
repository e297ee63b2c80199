//go:build unix

package search

import "golang.org/x/sys/unix"

// DeviceOf returns the device ID of the filesystem holding path.
// Symlinks are followed.
func DeviceOf(path string) (uint64, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, false
	}
	return uint64(st.Dev), true
}
