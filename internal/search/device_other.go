//go:build !unix

package search

// DeviceOf is not supported here; on Windows each drive is its own root,
// so there are no mount points to stop at.
func DeviceOf(path string) (uint64, bool) {
	return 0, false
}
