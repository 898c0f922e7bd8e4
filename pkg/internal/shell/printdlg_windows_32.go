//go:build windows && !(amd64 || arm64)

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// PRINTDLGW is byte-packed on 32-bit Windows, which a Go struct cannot express.
func (s *Shell) showPrintDialog(context.Context) error {
	return &types.PrintError{Op: "dialog", Err: fmt.Errorf("print dialog: %w", errors.ErrUnsupported)}
}
