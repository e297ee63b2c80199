//go:build windows

package ui

import "os/exec"

// revealInFileManager opens Explorer on the enclosing folder with path selected
func revealInFileManager(path string) error {
	return exec.Command("explorer.exe", "/select,"+path).Start()
}
