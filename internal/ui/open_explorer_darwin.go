//go:build darwin

package ui

import "os/exec"

// revealInFileManager opens Finder on the enclosing folder with path selected
func revealInFileManager(path string) error {
	return exec.Command("open", "-R", path).Start()
}
