// Package host implements the operations the front end calls on the native
// backend: reading and writing text files, revealing and printing them, and
// opening the app's storage folder.
package host

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/quill/pkg/internal/appdata"
	"github.com/joeydtaylor/quill/pkg/internal/codec"
	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/shell"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

const (
	// DefaultAppID names the per-user data directory.
	DefaultAppID = "com.quill.notes"
	// DefaultStorageFolder is the storage subfolder opened by OpenSecondaryStorageFolder.
	DefaultStorageFolder = "skins"
)

// Host holds what the operations need from the process: its launch arguments, the
// platform shell and the data directory. The operations themselves keep no state.
type Host struct {
	componentMetadata types.ComponentMetadata

	args          []string
	shell         types.Shell
	appID         string
	dataDir       string
	storageFolder string

	loggers internallogger.Fanout
}

// New returns a Host for this process's argv and the platform shell.
func New(options ...types.Option[*Host]) *Host {
	h := &Host{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "HOST",
		},
		args:          append([]string(nil), os.Args...),
		appID:         DefaultAppID,
		storageFolder: DefaultStorageFolder,
	}
	for _, opt := range options {
		opt(h)
	}
	if h.shell == nil {
		h.shell = shell.New(shell.WithLogger(h.loggers.Loggers()...))
	}
	return h
}

// WithArgs replaces the launch argv. argv[0] is the executable.
func WithArgs(argv []string) types.Option[*Host] {
	return func(h *Host) {
		h.args = append([]string(nil), argv...)
	}
}

// WithShell sets the platform shell.
func WithShell(s types.Shell) types.Option[*Host] {
	return func(h *Host) {
		if s != nil {
			h.shell = s
		}
	}
}

// WithAppID sets the application identifier used to locate the data directory.
func WithAppID(appID string) types.Option[*Host] {
	return func(h *Host) {
		if appID != "" {
			h.appID = appID
		}
	}
}

// WithDataDir pins the data directory instead of resolving it from the app ID.
func WithDataDir(dir string) types.Option[*Host] {
	return func(h *Host) {
		h.dataDir = dir
	}
}

// WithStorageFolder sets the storage subfolder name.
func WithStorageFolder(name string) types.Option[*Host] {
	return func(h *Host) {
		if name != "" {
			h.storageFolder = name
		}
	}
}

// WithLogger attaches loggers to the host.
func WithLogger(loggers ...types.Logger) types.Option[*Host] {
	return func(h *Host) {
		h.ConnectLogger(loggers...)
	}
}

// GetOpenedFiles returns the launch arguments after the executable, in order.
func (h *Host) GetOpenedFiles(ctx context.Context) []string {
	_ = ctx
	if len(h.args) <= 1 {
		return []string{}
	}
	return append([]string{}, h.args[1:]...)
}

// ReadTextFile reads path and decodes it by BOM and content sniffing.
func (h *Host) ReadTextFile(ctx context.Context, path string) (string, error) {
	_ = ctx
	text, enc, err := codec.ReadFile(path)
	if err != nil {
		h.NotifyLoggers(types.WarnLevel, "ReadTextFile: read failed", "component", h.componentMetadata, "event", "ReadTextFile", "path", path, "error", err)
		return "", err
	}
	h.NotifyLoggers(types.DebugLevel, "ReadTextFile: decoded", "component", h.componentMetadata, "event", "ReadTextFile", "path", path, "encoding", enc.String(), "result", "SUCCESS")
	return text, nil
}

// WriteTextFile creates or truncates path with text as UTF-8.
func (h *Host) WriteTextFile(ctx context.Context, path, text string) error {
	_ = ctx
	if err := codec.WriteFile(path, text); err != nil {
		h.NotifyLoggers(types.WarnLevel, "WriteTextFile: write failed", "component", h.componentMetadata, "event", "WriteTextFile", "path", path, "error", err)
		return err
	}
	h.NotifyLoggers(types.DebugLevel, "WriteTextFile: written", "component", h.componentMetadata, "event", "WriteTextFile", "path", path, "bytes", len(text), "result", "SUCCESS")
	return nil
}

// RevealFile opens the file manager at path.
func (h *Host) RevealFile(ctx context.Context, path string) error {
	return h.shell.RevealPath(ctx, path)
}

// PrintFile hands path to the platform print flow.
func (h *Host) PrintFile(ctx context.Context, path string) error {
	return h.shell.InvokePrint(ctx, path)
}

// ShowPrintDialog shows the blank native print-setup dialog.
func (h *Host) ShowPrintDialog(ctx context.Context) error {
	return h.shell.ShowPrintDialog(ctx)
}

// StorageDir returns the storage folder path without creating it.
func (h *Host) StorageDir() (string, error) {
	dir := h.dataDir
	if dir == "" {
		resolved, err := appdata.LocalDataDir(h.appID)
		if err != nil {
			return "", err
		}
		dir = resolved
	}
	return filepath.Join(dir, h.storageFolder), nil
}

// OpenSecondaryStorageFolder creates the storage folder if needed and opens it in the
// file manager. Calling it again on an existing folder is not an error.
func (h *Host) OpenSecondaryStorageFolder(ctx context.Context) error {
	dir, err := h.StorageDir()
	if err != nil {
		return types.NewIOError("mkdir", "", err)
	}
	if err := appdata.EnsureDir(dir); err != nil {
		h.NotifyLoggers(types.WarnLevel, "OpenSecondaryStorageFolder: create failed", "component", h.componentMetadata, "event", "OpenSecondaryStorageFolder", "path", dir, "error", err)
		return types.NewIOError("mkdir", dir, err)
	}
	return h.shell.OpenFolder(ctx, dir)
}
