// Package bridge serves the host's named commands to the front end on loopback.
//
// One listener carries three transports: plain HTTP (POST /invoke/{command}),
// gRPC over cleartext HTTP/2 and gRPC-Web for browser front ends. All of them end
// in Invoke, so a command behaves the same whichever way it is called.
package bridge

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

const (
	// TokenHeader carries the bridge token on HTTP requests.
	TokenHeader = "X-Quill-Token"
	// TokenMetadataKey carries the bridge token on gRPC calls.
	TokenMetadataKey = "x-quill-token"
	// TokenQueryParam carries the token for routes browsers open as websockets.
	TokenQueryParam = "token"

	defaultAddress             = "127.0.0.1:0"
	defaultTimeout             = 30 * time.Second
	defaultCompressionMinBytes = 1024
	maxRequestBytes            = 64 << 20
)

type route struct {
	pattern string
	handler http.Handler
}

// Server implements types.Bridge.
type Server struct {
	componentMetadata types.ComponentMetadata

	address             string
	token               string
	authRequired        bool
	timeout             time.Duration
	allowedOrigins      []string
	compressionMinBytes int
	headers             map[string]string
	routes              []route

	commandsLock sync.RWMutex
	commands     map[string]types.CommandFunc

	loggers internallogger.Fanout

	configLock   sync.Mutex
	configFrozen int32

	serverMu sync.Mutex
	server   *http.Server
	listener net.Listener
	ready    chan struct{}
	addr     atomic.Value
}

// NewServer constructs a bridge with a fresh random token and auth required.
func NewServer(ctx context.Context, options ...types.Option[types.Bridge]) types.Bridge {
	_ = ctx
	s := &Server{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "BRIDGE",
		},
		address:             defaultAddress,
		token:               utils.NewToken(),
		authRequired:        true,
		timeout:             defaultTimeout,
		compressionMinBytes: defaultCompressionMinBytes,
		headers:             make(map[string]string),
		commands:            make(map[string]types.CommandFunc),
		ready:               make(chan struct{}),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

func (s *Server) isFrozen() bool {
	return atomic.LoadInt32(&s.configFrozen) == 1
}

// Token returns the token clients must present.
func (s *Server) Token() string {
	s.configLock.Lock()
	defer s.configLock.Unlock()
	return s.token
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or "" before Ready.
func (s *Server) Addr() string {
	if v, ok := s.addr.Load().(string); ok {
		return v
	}
	return ""
}
