//go:build darwin

package model

import (
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sys/unix"
)

// skippedFilesystems are network and pseudo filesystems; searching them is slow or pointless
var skippedFilesystems = []string{
	"smbfs", "nfs", "afpfs", "webdav", "cifs",
	"devfs", "autofs", "mtmfs", "nullfs",
}

func getDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

func getPlatformDrives() ([]Drive, error) {
	var drives []Drive

	// Add root filesystem first
	rootDrive := Drive{
		Letter: "Macintosh HD",
		Path:   "/",
		Label:  "Macintosh HD",
	}
	rootDrive.TotalBytes, rootDrive.FreeBytes = getDiskSpace("/")
	drives = append(drives, rootDrive)

	// Scan /Volumes for mounted drives
	volumesDir := "/Volumes"
	entries, err := os.ReadDir(volumesDir)
	if err != nil {
		// If we can't read /Volumes, just return root
		return drives, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		volumePath := filepath.Join(volumesDir, entry.Name())

		// Get filesystem info to filter out network/pseudo filesystems
		var stat unix.Statfs_t
		if err := unix.Statfs(volumePath, &stat); err != nil {
			// Skip volumes we can't access
			continue
		}

		// Filter out non-physical filesystems
		fsType := unix.ByteSliceToString(stat.Fstypename[:])
		if slices.Contains(skippedFilesystems, fsType) {
			continue
		}

		drive := Drive{
			Letter: entry.Name(),
			Path:   volumePath,
			Label:  entry.Name(),
		}
		drive.TotalBytes, drive.FreeBytes = getDiskSpace(volumePath)

		// Only add if we got valid disk space info
		if drive.TotalBytes > 0 {
			drives = append(drives, drive)
		}
	}

	return drives, nil
}
