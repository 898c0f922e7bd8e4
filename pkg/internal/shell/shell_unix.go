//go:build !windows && !darwin

package shell

import "path/filepath"

// xdg-open cannot select a file, so the containing folder is opened instead.
func revealCommand(path string) (string, []string, error) {
	return "xdg-open", []string{filepath.Dir(path)}, nil
}

func openCommand(dir string) (string, []string) {
	return "xdg-open", []string{dir}
}
