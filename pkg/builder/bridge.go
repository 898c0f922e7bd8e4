package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/bridge"
	"github.com/joeydtaylor/quill/pkg/internal/types"
)

type Bridge = types.Bridge

type CommandFunc = types.CommandFunc

// Bridge header and metadata names clients authenticate with.
const (
	BridgeTokenHeader      = bridge.TokenHeader
	BridgeTokenMetadataKey = bridge.TokenMetadataKey
	BridgeTokenQueryParam  = bridge.TokenQueryParam
	BridgeGRPCInvokeMethod = bridge.GRPCInvokeMethod
)

// NewBridge creates the loopback command bridge.
func NewBridge(ctx context.Context, options ...types.Option[types.Bridge]) types.Bridge {
	return bridge.NewServer(ctx, options...)
}

// BridgeWithLogger attaches one or more loggers to the bridge.
func BridgeWithLogger(loggers ...types.Logger) types.Option[types.Bridge] {
	return bridge.WithLogger(loggers...)
}

// BridgeWithAddress sets the listen address.
func BridgeWithAddress(address string) types.Option[types.Bridge] {
	return bridge.WithAddress(address)
}

// BridgeWithToken sets the shared token clients present.
func BridgeWithToken(token string) types.Option[types.Bridge] {
	return bridge.WithToken(token)
}

// BridgeWithAuthRequired toggles token enforcement.
func BridgeWithAuthRequired(required bool) types.Option[types.Bridge] {
	return bridge.WithAuthRequired(required)
}

// BridgeWithTimeout bounds each command invocation.
func BridgeWithTimeout(timeout time.Duration) types.Option[types.Bridge] {
	return bridge.WithTimeout(timeout)
}

// BridgeWithAllowedOrigins limits browser origins.
func BridgeWithAllowedOrigins(origins ...string) types.Option[types.Bridge] {
	return bridge.WithAllowedOrigins(origins...)
}

// BridgeWithCompressionMinBytes sets the response compression threshold.
func BridgeWithCompressionMinBytes(n int) types.Option[types.Bridge] {
	return bridge.WithCompressionMinBytes(n)
}

// BridgeWithHeader adds a default response header.
func BridgeWithHeader(key, value string) types.Option[types.Bridge] {
	return bridge.WithHeader(key, value)
}

// BridgeWithCommand registers a named command.
func BridgeWithCommand(name string, fn types.CommandFunc) types.Option[types.Bridge] {
	return bridge.WithCommand(name, fn)
}
