//go:build darwin

package shell

func revealCommand(path string) (string, []string, error) {
	return "open", []string{"-R", path}, nil
}

func openCommand(dir string) (string, []string) {
	return "open", []string{dir}
}
