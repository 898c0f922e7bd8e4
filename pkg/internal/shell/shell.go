// Package shell implements types.Shell for the platform the binary is built for.
// The per-platform command forms live in shell_<os>.go; everything else is shared.
package shell

import (
	"context"

	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

// Shell is the host shell capability for the current platform.
type Shell struct {
	componentMetadata types.ComponentMetadata

	runner Runner

	loggers internallogger.Fanout
}

// New constructs a Shell that spawns real processes unless a Runner option replaces it.
func New(options ...types.Option[*Shell]) *Shell {
	s := &Shell{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SHELL",
		},
		runner: execRunner{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) types.Option[*Shell] {
	return func(s *Shell) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithLogger attaches one or more loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Shell] {
	return func(s *Shell) {
		s.ConnectLogger(loggers...)
	}
}

// RevealPath opens the file manager at path. The child is not awaited, but a failure
// to start it is returned as *types.IOError.
func (s *Shell) RevealPath(ctx context.Context, path string) error {
	name, args, err := revealCommand(path)
	if err != nil {
		return types.NewIOError("reveal", path, err)
	}
	return s.start(ctx, "reveal", path, name, args)
}

// OpenFolder opens dir in the file manager.
func (s *Shell) OpenFolder(ctx context.Context, dir string) error {
	name, args := openCommand(dir)
	return s.start(ctx, "open", dir, name, args)
}

// InvokePrint hands path to the platform print flow.
func (s *Shell) InvokePrint(ctx context.Context, path string) error {
	err := s.invokePrint(ctx, path)
	s.logResult("InvokePrint", path, err)
	return err
}

// ShowPrintDialog shows a blank native print-setup dialog.
func (s *Shell) ShowPrintDialog(ctx context.Context) error {
	err := s.showPrintDialog(ctx)
	s.logResult("ShowPrintDialog", "", err)
	return err
}

func (s *Shell) start(ctx context.Context, op, path, name string, args []string) error {
	if err := s.runner.Start(ctx, name, args...); err != nil {
		s.NotifyLoggers(
			types.ErrorLevel,
			"Shell: spawn failed",
			"component", s.componentMetadata,
			"event", "Spawn",
			"command", name,
			"path", path,
			"error", err,
		)
		return types.NewIOError(op, path, err)
	}
	s.NotifyLoggers(
		types.DebugLevel,
		"Shell: spawned",
		"component", s.componentMetadata,
		"event", "Spawn",
		"command", name,
		"path", path,
	)
	return nil
}

func (s *Shell) logResult(event, path string, err error) {
	if err == nil {
		s.NotifyLoggers(types.DebugLevel, "Shell: "+event, "component", s.componentMetadata, "event", event, "path", path, "result", "SUCCESS")
		return
	}
	s.NotifyLoggers(types.WarnLevel, "Shell: "+event+" failed", "component", s.componentMetadata, "event", event, "path", path, "error", err)
}

var _ types.Shell = (*Shell)(nil)
