package types

import "context"

// Event names pushed to the front end.
const (
	EventOpenFiles        = "open-files"
	EventWindowShow       = "window:show"
	EventWindowUnminimize = "window:unminimize"
	EventWindowFocus      = "window:focus"
	EventWindowOnTop      = "window:always-on-top"
)

// Event is one message pushed to the front end.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Window is the backend's view of the primary GUI window.
type Window interface {
	Emit(ctx context.Context, event string, payload interface{}) error
	Show(ctx context.Context) error
	Unminimize(ctx context.Context) error
	SetFocus(ctx context.Context) error
	SetAlwaysOnTop(ctx context.Context, onTop bool) error
}

// LaunchHandler receives the argv of a later process launch inside the primary
// instance. argv[0] is the launching executable.
type LaunchHandler func(ctx context.Context, argv []string)
