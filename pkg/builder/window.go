package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/window"
)

type Window = types.Window

type WindowRegistry = window.Registry

type EventWindow = window.EventWindow

type LaunchHandler = types.LaunchHandler

// Front-end event names.
const (
	EventOpenFiles        = types.EventOpenFiles
	EventWindowShow       = types.EventWindowShow
	EventWindowUnminimize = types.EventWindowUnminimize
	EventWindowFocus      = types.EventWindowFocus
	EventWindowOnTop      = types.EventWindowOnTop
)

var ErrPrimaryRegistered = window.ErrPrimaryRegistered

// NewWindowRegistry creates an empty primary-window registry.
func NewWindowRegistry(options ...types.Option[*window.Registry]) *window.Registry {
	return window.NewRegistry(options...)
}

// WindowRegistryWithForceForeground toggles the always-on-top flip after focusing.
func WindowRegistryWithForceForeground(on bool) types.Option[*window.Registry] {
	return window.WithForceForeground(on)
}

// WindowRegistryWithLogger attaches loggers to the registry.
func WindowRegistryWithLogger(loggers ...types.Logger) types.Option[*window.Registry] {
	return window.WithRegistryLogger(loggers...)
}

// NewEventWindow creates the websocket-backed primary window.
func NewEventWindow(ctx context.Context, options ...types.Option[*window.EventWindow]) *window.EventWindow {
	return window.NewEventWindow(ctx, options...)
}

// EventWindowWithAllowedOrigins sets accepted websocket origin patterns.
func EventWindowWithAllowedOrigins(origins ...string) types.Option[*window.EventWindow] {
	return window.WithAllowedOrigins(origins...)
}

// EventWindowWithSendBuffer sets the per-connection queue depth.
func EventWindowWithSendBuffer(n int) types.Option[*window.EventWindow] {
	return window.WithSendBuffer(n)
}

// EventWindowWithWriteTimeout bounds each websocket write.
func EventWindowWithWriteTimeout(d time.Duration) types.Option[*window.EventWindow] {
	return window.WithWriteTimeout(d)
}

// EventWindowWithLogger attaches loggers to the event window.
func EventWindowWithLogger(loggers ...types.Logger) types.Option[*window.EventWindow] {
	return window.WithEventWindowLogger(loggers...)
}
