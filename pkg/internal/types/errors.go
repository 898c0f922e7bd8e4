package types

import (
	"errors"
	"fmt"
)

// ErrPrintCancelled is wrapped by a PrintError when the user dismisses a print dialog
// or the dialog could not be shown.
var ErrPrintCancelled = errors.New("user cancelled or failed to open print dialog")

// IOError reports a filesystem or process-spawn failure. Its message is the
// underlying OS error text so the front end can show it verbatim.
type IOError struct {
	Op   string // read, write, mkdir, reveal, open
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: unknown error", e.Op, e.Path)
	}
	return e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err, returning nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// PrintError reports a failure signalled by the host print subsystem. Code carries the
// platform result or exit code when one exists.
type PrintError struct {
	Op   string
	Path string
	Code int
	Err  error
}

func (e *PrintError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("print failed: %d", e.Code)
	case e.Code != 0:
		return fmt.Sprintf("print failed: %v (code %d)", e.Err, e.Code)
	default:
		return e.Err.Error()
	}
}

func (e *PrintError) Unwrap() error { return e.Err }

// Error kinds reported to the front end alongside a failed command.
const (
	ErrorKindIO       = "io"
	ErrorKindPrint    = "print"
	ErrorKindArgs     = "args"
	ErrorKindAuth     = "auth"
	ErrorKindNotFound = "not_found"
	ErrorKindInternal = "internal"
)

// BridgeError carries a transport status for a failed bridge call.
type BridgeError struct {
	StatusCode int
	Kind       string
	Message    string
	Err        error
}

func (e *BridgeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bridge %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bridge %d: %s, %v", e.StatusCode, e.Message, e.Err)
}

func (e *BridgeError) Unwrap() error { return e.Err }

// ErrorKind classifies err for the front end.
func ErrorKind(err error) string {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) && bridgeErr.Kind != "" {
		return bridgeErr.Kind
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ErrorKindIO
	}
	var printErr *PrintError
	if errors.As(err, &printErr) {
		return ErrorKindPrint
	}
	return ErrorKindInternal
}
