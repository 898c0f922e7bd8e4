//go:build windows && (amd64 || arm64)

package shell

import (
	"context"
	"runtime"
	"unsafe"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"golang.org/x/sys/windows"
)

// printDlgW mirrors PRINTDLGW with 64-bit natural alignment (120 bytes).
type printDlgW struct {
	lStructSize         uint32
	hwndOwner           windows.Handle
	hDevMode            windows.Handle
	hDevNames           windows.Handle
	hDC                 windows.Handle
	flags               uint32
	nFromPage           uint16
	nToPage             uint16
	nMinPage            uint16
	nMaxPage            uint16
	nCopies             uint16
	hInstance           windows.Handle
	lCustData           uintptr
	lpfnPrintHook       uintptr
	lpfnSetupHook       uintptr
	lpPrintTemplateName *uint16
	lpSetupTemplateName *uint16
	hPrintTemplate      windows.Handle
	hSetupTemplate      windows.Handle
}

var (
	comdlg32                 = windows.NewLazySystemDLL("comdlg32.dll")
	procPrintDlgW            = comdlg32.NewProc("PrintDlgW")
	procCommDlgExtendedError = comdlg32.NewProc("CommDlgExtendedError")

	kernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procGlobalFree = kernel32.NewProc("GlobalFree")
)

func (s *Shell) showPrintDialog(context.Context) error {
	if err := procPrintDlgW.Find(); err != nil {
		return &types.PrintError{Op: "dialog", Err: err}
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var pd printDlgW
	pd.lStructSize = uint32(unsafe.Sizeof(pd))

	r, _, _ := procPrintDlgW.Call(uintptr(unsafe.Pointer(&pd)))
	if r == 0 {
		// CommDlgExtendedError is zero when the user simply cancelled.
		code, _, _ := procCommDlgExtendedError.Call()
		return &types.PrintError{Op: "dialog", Code: int(code), Err: types.ErrPrintCancelled}
	}

	for _, h := range []windows.Handle{pd.hDevMode, pd.hDevNames} {
		if h != 0 {
			_, _, _ = procGlobalFree.Call(uintptr(h))
		}
	}
	return nil
}
