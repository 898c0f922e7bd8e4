package types

import "context"

// Shell is the host shell capability. Exactly one implementation exists per target
// platform; callers never branch on the operating system themselves.
type Shell interface {
	// RevealPath opens a file manager window with path selected (or its folder
	// opened, where selection is not supported). Spawn failures are returned.
	RevealPath(ctx context.Context, path string) error

	// InvokePrint sends path to the platform print flow. Failures are *PrintError.
	InvokePrint(ctx context.Context, path string) error

	// OpenFolder opens dir in the file manager.
	OpenFolder(ctx context.Context, dir string) error

	// ShowPrintDialog shows a blank native print-setup dialog. A cancel is a
	// *PrintError wrapping ErrPrintCancelled.
	ShowPrintDialog(ctx context.Context) error
}
