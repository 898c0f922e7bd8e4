package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner spawns host processes.
type Runner interface {
	// Start launches name without waiting for it; the child is reaped in the background.
	Start(ctx context.Context, name string, args ...string) error

	// Run launches name, waits, and returns its exit code and trimmed stderr. err is
	// non-nil only when the process could not be run at all.
	Run(ctx context.Context, name string, args ...string) (code int, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Start(_ context.Context, name string, args ...string) error {
	// Not CommandContext: the file manager must outlive the request that opened it.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return 0, "", nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), strings.TrimSpace(stderr.String()), nil
	}
	return -1, "", fmt.Errorf("%s: %w", name, err)
}
