//go:build !windows

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// invokePrint submits path to the default CUPS queue.
func (s *Shell) invokePrint(ctx context.Context, path string) error {
	code, stderr, err := s.runner.Run(ctx, "lp", "--", path)
	if err != nil {
		return &types.PrintError{Op: "print", Path: path, Code: -1, Err: err}
	}
	if code != 0 {
		if stderr == "" {
			stderr = "lp exited with failure"
		}
		return &types.PrintError{Op: "print", Path: path, Code: code, Err: errors.New(stderr)}
	}
	return nil
}

// showPrintDialog has no blank print-setup dialog to show outside Windows.
func (s *Shell) showPrintDialog(context.Context) error {
	return &types.PrintError{Op: "dialog", Err: fmt.Errorf("print dialog: %w", errors.ErrUnsupported)}
}
