package types

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// CommandFunc implements one named remote call. args is the raw JSON argument
// object (may be empty); the result is marshalled to JSON.
type CommandFunc func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Bridge serves named commands to the front end over loopback HTTP, gRPC and gRPC-Web.
type Bridge interface {
	// Serve binds the listener and blocks until ctx is cancelled or the server fails.
	Serve(ctx context.Context) error

	// Ready is closed once the listener is bound.
	Ready() <-chan struct{}

	// Addr returns the bound address, or "" before Ready.
	Addr() string

	// Register adds a named command. Registering an existing name replaces it.
	Register(name string, fn CommandFunc)

	// Handle mounts an extra HTTP handler (e.g. the event socket). Token auth applies.
	Handle(pattern string, handler http.Handler)

	// Invoke runs a command directly, the way every transport does.
	Invoke(ctx context.Context, name string, args json.RawMessage) (interface{}, error)

	ConnectLogger(...Logger)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetAddress(address string)
	SetToken(token string)
	SetAuthRequired(required bool)
	SetTimeout(timeout time.Duration)
	SetAllowedOrigins(origins ...string)
	SetCompressionMinBytes(n int)
	AddHeader(key, value string)

	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
}
