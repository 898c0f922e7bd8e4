package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
)

var grpcWebAllowedHeaders = []string{
	"content-type",
	"grpc-timeout",
	"x-grpc-web",
	"x-user-agent",
	TokenMetadataKey,
}

// Serve binds the listener and blocks until ctx is cancelled or the server fails.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.serverMu.Lock()
	if s.server != nil {
		s.serverMu.Unlock()
		return fmt.Errorf("server already started")
	}

	cfg := s.snapshotConfig()
	if cfg.address == "" {
		s.serverMu.Unlock()
		return errors.New("address not configured")
	}
	if cfg.authRequired && cfg.token == "" {
		s.serverMu.Unlock()
		return errors.New("auth required but no token configured")
	}

	atomic.StoreInt32(&s.configFrozen, 1)

	grpcServer := s.newGRPCServer(cfg)
	handler := s.buildHandler(cfg, grpcServer)

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		s.serverMu.Unlock()
		s.NotifyLoggers(types.ErrorLevel, "Serve: bind failed", "component", s.componentMetadata, "event", "ServeError", "address", cfg.address, "error", err)
		return err
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: cfg.timeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	server := s.server
	s.addr.Store(ln.Addr().String())
	close(s.ready)
	s.serverMu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.NotifyLoggers(types.InfoLevel, "Serve: starting bridge", "component", s.componentMetadata, "event", "ServeStart", "address", ln.Addr().String(), "auth_required", cfg.authRequired)
		errCh <- server.Serve(ln)
	}()

	defer grpcServer.Stop()

	select {
	case <-ctx.Done():
		s.NotifyLoggers(types.WarnLevel, "Serve: context canceled, shutting down", "component", s.componentMetadata, "event", "ServeStop", "result", "CANCELLED")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.NotifyLoggers(types.ErrorLevel, "Serve: server error", "component", s.componentMetadata, "event", "ServeError", "error", err)
			return err
		}
		return nil
	}
}

// buildHandler routes gRPC and gRPC-Web to grpcServer and everything else to the
// HTTP mux behind CORS.
func (s *Server) buildHandler(cfg serverConfig, grpcServer *grpc.Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/invoke/{command}", s.handleInvoke(cfg))
	for _, rt := range cfg.routes {
		mux.Handle(rt.pattern, s.requireToken(cfg, rt.handler))
	}

	corsOpts := cors.Options{
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"Content-Type", "Content-Encoding", "Accept-Encoding", TokenHeader},
		ExposedHeaders: []string{"Content-Encoding"},
		MaxAge:         600,
	}
	if len(cfg.allowedOrigins) > 0 {
		corsOpts.AllowedOrigins = cfg.allowedOrigins
	}
	httpHandler := cors.New(corsOpts).Handler(mux)

	originFunc := func(origin string) bool {
		return originAllowed(origin, cfg.allowedOrigins)
	}
	wrapped := grpcweb.WrapServer(grpcServer,
		grpcweb.WithOriginFunc(originFunc),
		grpcweb.WithAllowedRequestHeaders(grpcWebAllowedHeaders),
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case wrapped.IsGrpcWebRequest(r), wrapped.IsAcceptableGrpcCorsRequest(r):
			wrapped.ServeHTTP(w, r)
		case isGRPCRequest(r):
			grpcServer.ServeHTTP(w, r)
		default:
			httpHandler.ServeHTTP(w, r)
		}
	})
}

func isGRPCRequest(r *http.Request) bool {
	if r.ProtoMajor != 2 {
		return false
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc")
}
