//go:build windows

package model

import "golang.org/x/sys/windows"

func getPlatformDrives() ([]Drive, error) {
	return getWindowsDrives()
}

func getDiskSpace(path string) (total, free int64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeAvailable, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeAvailable, &totalBytes, &totalFree); err != nil {
		return 0, 0
	}
	return int64(totalBytes), int64(freeAvailable)
}
