//go:build !windows && !darwin

package ui

import (
	"os/exec"
	"path/filepath"
)

// revealInFileManager opens the folder containing path with the desktop's
// default handler; xdg-open cannot select a file
func revealInFileManager(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}
