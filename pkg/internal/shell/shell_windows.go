//go:build windows

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"golang.org/x/sys/windows"
)

func revealCommand(path string) (string, []string, error) {
	if path == "" {
		return "", nil, errors.New("reveal: empty path")
	}
	return "explorer", []string{"/select,", path}, nil
}

func openCommand(dir string) (string, []string) {
	return "explorer", []string{dir}
}

// invokePrint runs the shell "print" verb for path. ShellExecuteW reports failure
// with a result of 32 or less.
func (s *Shell) invokePrint(_ context.Context, path string) error {
	verb, err := windows.UTF16PtrFromString("print")
	if err != nil {
		return &types.PrintError{Op: "print", Path: path, Err: err}
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &types.PrintError{Op: "print", Path: path, Err: err}
	}

	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOW); err != nil {
		code := 0
		var errno windows.Errno
		if errors.As(err, &errno) {
			code = int(errno)
		}
		return &types.PrintError{Op: "print", Path: path, Code: code, Err: fmt.Errorf("print failed: %w", err)}
	}
	return nil
}
