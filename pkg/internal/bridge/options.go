package bridge

import (
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the bridge.
func WithLogger(loggers ...types.Logger) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.ConnectLogger(loggers...)
	}
}

// WithAddress sets the listen address, e.g. "127.0.0.1:0".
func WithAddress(address string) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetAddress(address)
	}
}

// WithToken sets the shared token instead of a random one.
func WithToken(token string) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetToken(token)
	}
}

// WithAuthRequired toggles token enforcement.
func WithAuthRequired(required bool) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetAuthRequired(required)
	}
}

// WithTimeout bounds each command invocation.
func WithTimeout(timeout time.Duration) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetTimeout(timeout)
	}
}

// WithAllowedOrigins limits the browser origins the bridge answers.
func WithAllowedOrigins(origins ...string) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetAllowedOrigins(origins...)
	}
}

// WithCompressionMinBytes sets the response compression threshold.
func WithCompressionMinBytes(n int) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.SetCompressionMinBytes(n)
	}
}

// WithHeader adds a default response header.
func WithHeader(key, value string) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.AddHeader(key, value)
	}
}

// WithCommand registers a named command.
func WithCommand(name string, fn types.CommandFunc) types.Option[types.Bridge] {
	return func(b types.Bridge) {
		b.Register(name, fn)
	}
}
