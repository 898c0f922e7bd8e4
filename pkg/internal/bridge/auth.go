package bridge

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var errBadToken = errors.New("missing or invalid bridge token")

func tokenMatches(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// authorizeRequest checks the token header, and the query parameter when allowQuery is set.
func (s *Server) authorizeRequest(r *http.Request, cfg serverConfig, allowQuery bool) error {
	if !cfg.authRequired {
		return nil
	}
	if tokenMatches(r.Header.Get(TokenHeader), cfg.token) {
		return nil
	}
	if allowQuery && tokenMatches(r.URL.Query().Get(TokenQueryParam), cfg.token) {
		return nil
	}
	return errBadToken
}

func (s *Server) requireToken(cfg serverConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.authorizeRequest(r, cfg, true); err != nil {
			s.NotifyLoggers(types.WarnLevel, "Auth: request rejected", "component", s.componentMetadata, "event", "AuthReject", "path", r.URL.Path, "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) unaryAuthInterceptor(cfg serverConfig) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if cfg.authRequired {
			md, _ := metadata.FromIncomingContext(ctx)
			var got string
			if vals := md.Get(TokenMetadataKey); len(vals) > 0 {
				got = vals[0]
			}
			if !tokenMatches(got, cfg.token) {
				s.NotifyLoggers(types.WarnLevel, "Auth: call rejected", "component", s.componentMetadata, "event", "AuthReject", "method", info.FullMethod, "error", errBadToken)
				return nil, status.Error(codes.Unauthenticated, errBadToken.Error())
			}
		}
		return handler(ctx, req)
	}
}

// originAllowed reports whether a browser origin may call the bridge. Requests
// without an Origin header come from native clients.
func originAllowed(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	return utils.ContainsFold(allowed, "*") || utils.ContainsFold(allowed, origin)
}
