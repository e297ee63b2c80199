package model

import (
	"fmt"
	"os"
)

// Drive represents a mounted volume that can serve as a search root
type Drive struct {
	Letter     string // e.g. "C" on Windows, volume name elsewhere
	Path       string // e.g. "C:\\" or "/Volumes/Data"
	Label      string
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this drive
func (d Drive) UsedBytes() int64 {
	return d.TotalBytes - d.FreeBytes
}

// UsedPercent returns percentage of drive used
func (d Drive) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes()) / float64(d.TotalBytes) * 100
}

// GetDrives returns all available drives on the system
func GetDrives() ([]Drive, error) {
	return getPlatformDrives()
}

// DrivePaths returns the root path of every drive
func DrivePaths(drives []Drive) []string {
	paths := make([]string, len(drives))
	for i, d := range drives {
		paths[i] = d.Path
	}
	return paths
}

func getWindowsDrives() ([]Drive, error) {
	var drives []Drive

	for letter := 'A'; letter <= 'Z'; letter++ {
		path := fmt.Sprintf("%c:\\", letter)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		drive := Drive{
			Letter: string(letter),
			Path:   path,
			Label:  path,
		}
		drive.TotalBytes, drive.FreeBytes = getDiskSpace(path)
		drives = append(drives, drive)
	}

	return drives, nil
}
