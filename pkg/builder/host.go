package builder

import (
	"github.com/joeydtaylor/quill/pkg/internal/host"
	"github.com/joeydtaylor/quill/pkg/internal/shell"
	"github.com/joeydtaylor/quill/pkg/internal/types"
)

type Host = host.Host

type Shell = types.Shell

// NewHost creates the host operations for this process.
func NewHost(options ...types.Option[*host.Host]) *host.Host {
	return host.New(options...)
}

// HostWithArgs replaces the launch argv.
func HostWithArgs(argv []string) types.Option[*host.Host] {
	return host.WithArgs(argv)
}

// HostWithShell sets the platform shell.
func HostWithShell(s types.Shell) types.Option[*host.Host] {
	return host.WithShell(s)
}

// HostWithAppID sets the application identifier.
func HostWithAppID(appID string) types.Option[*host.Host] {
	return host.WithAppID(appID)
}

// HostWithDataDir pins the data directory.
func HostWithDataDir(dir string) types.Option[*host.Host] {
	return host.WithDataDir(dir)
}

// HostWithStorageFolder sets the storage subfolder name.
func HostWithStorageFolder(name string) types.Option[*host.Host] {
	return host.WithStorageFolder(name)
}

// HostWithLogger attaches loggers to the host.
func HostWithLogger(loggers ...types.Logger) types.Option[*host.Host] {
	return host.WithLogger(loggers...)
}

// NewShell creates the platform shell.
func NewShell(options ...types.Option[*shell.Shell]) *shell.Shell {
	return shell.New(options...)
}

// ShellWithLogger attaches loggers to the shell.
func ShellWithLogger(loggers ...types.Logger) types.Option[*shell.Shell] {
	return shell.WithLogger(loggers...)
}
