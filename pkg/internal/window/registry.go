// Package window owns the backend's handle on the primary GUI window.
//
// Registry is created by the process that owns the window and passed explicitly to
// whatever needs it (the single-instance hand-off in particular); there is no
// package-level window state.
package window

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

// ErrPrimaryRegistered is returned when a second primary window is registered.
var ErrPrimaryRegistered = errors.New("window: primary window already registered")

// Registry holds at most one primary window for the application lifetime.
type Registry struct {
	componentMetadata types.ComponentMetadata

	mu              sync.Mutex
	primary         types.Window
	forceForeground bool

	loggers internallogger.Fanout
}

// NewRegistry returns an empty registry. Force-foreground defaults to on for Windows,
// whose window manager otherwise refuses to raise a background window.
func NewRegistry(options ...types.Option[*Registry]) *Registry {
	r := &Registry{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "WINDOW_REGISTRY",
		},
		forceForeground: runtime.GOOS == "windows",
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// WithForceForeground toggles the always-on-top flip after focusing.
func WithForceForeground(on bool) types.Option[*Registry] {
	return func(r *Registry) {
		r.forceForeground = on
	}
}

// WithRegistryLogger attaches loggers to the registry.
func WithRegistryLogger(loggers ...types.Logger) types.Option[*Registry] {
	return func(r *Registry) {
		r.ConnectLogger(loggers...)
	}
}

// Register records w as the primary window.
func (r *Registry) Register(w types.Window) error {
	if w == nil {
		return errors.New("window: nil window")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.primary != nil {
		return ErrPrimaryRegistered
	}
	r.primary = w
	return nil
}

// Lookup returns the primary window if one is registered.
func (r *Registry) Lookup() (types.Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.primary, r.primary != nil
}

// Redirect delivers a later launch to the primary window: the launch's file
// arguments (argv without the executable) are emitted as open-files, then the window
// is shown, restored and focused. Window failures are logged; focus is best effort.
// It reports whether a primary window was registered.
func (r *Registry) Redirect(ctx context.Context, argv []string) bool {
	w, ok := r.Lookup()
	if !ok {
		r.NotifyLoggers(types.WarnLevel, "Redirect: no primary window", "component", r.componentMetadata, "event", "Redirect", "result", "NO_WINDOW")
		return false
	}

	files := []string{}
	if len(argv) > 1 {
		files = append(files, argv[1:]...)
	}

	r.step(ctx, "Emit", func(ctx context.Context) error { return w.Emit(ctx, types.EventOpenFiles, files) })
	r.step(ctx, "Show", w.Show)
	r.step(ctx, "Unminimize", w.Unminimize)
	r.step(ctx, "SetFocus", w.SetFocus)
	if r.forceForeground {
		r.step(ctx, "AlwaysOnTop", func(ctx context.Context) error { return w.SetAlwaysOnTop(ctx, true) })
		r.step(ctx, "AlwaysOnTop", func(ctx context.Context) error { return w.SetAlwaysOnTop(ctx, false) })
	}

	r.NotifyLoggers(types.InfoLevel, "Redirect: delivered launch", "component", r.componentMetadata, "event", "Redirect", "files", len(files))
	return true
}

func (r *Registry) step(ctx context.Context, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		r.NotifyLoggers(types.WarnLevel, "Redirect: window step failed", "component", r.componentMetadata, "event", name, "error", err)
	}
}
