package bridge

import (
	"net/http"
	"strings"
	"time"
)

type serverConfig struct {
	address             string
	token               string
	authRequired        bool
	timeout             time.Duration
	allowedOrigins      []string
	compressionMinBytes int
	headers             map[string]string
	routes              []route
}

// SetAddress configures the listen address.
func (s *Server) SetAddress(address string) {
	s.requireNotFrozen("SetAddress")
	s.configLock.Lock()
	s.address = address
	s.configLock.Unlock()
}

// SetToken replaces the bridge token.
func (s *Server) SetToken(token string) {
	s.requireNotFrozen("SetToken")
	if token == "" {
		return
	}
	s.configLock.Lock()
	s.token = token
	s.configLock.Unlock()
}

// SetAuthRequired toggles token enforcement.
func (s *Server) SetAuthRequired(required bool) {
	s.requireNotFrozen("SetAuthRequired")
	s.configLock.Lock()
	s.authRequired = required
	s.configLock.Unlock()
}

// SetTimeout bounds each command invocation and request header read.
func (s *Server) SetTimeout(timeout time.Duration) {
	s.requireNotFrozen("SetTimeout")
	s.configLock.Lock()
	s.timeout = timeout
	s.configLock.Unlock()
}

// SetAllowedOrigins limits browser origins. Empty allows any origin.
func (s *Server) SetAllowedOrigins(origins ...string) {
	s.requireNotFrozen("SetAllowedOrigins")
	s.configLock.Lock()
	defer s.configLock.Unlock()
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			s.allowedOrigins = append(s.allowedOrigins, o)
		}
	}
}

// SetCompressionMinBytes sets the smallest response body that is compressed.
// A negative value disables response compression.
func (s *Server) SetCompressionMinBytes(n int) {
	s.requireNotFrozen("SetCompressionMinBytes")
	s.configLock.Lock()
	s.compressionMinBytes = n
	s.configLock.Unlock()
}

// AddHeader adds a default response header.
func (s *Server) AddHeader(key, value string) {
	s.requireNotFrozen("AddHeader")
	if key == "" {
		return
	}
	s.configLock.Lock()
	s.headers[key] = value
	s.configLock.Unlock()
}

// Handle mounts handler at pattern. The bridge token is required, and may also be
// given as the token query parameter.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.requireNotFrozen("Handle")
	if pattern == "" || handler == nil {
		return
	}
	s.configLock.Lock()
	s.routes = append(s.routes, route{pattern: pattern, handler: handler})
	s.configLock.Unlock()
}

func (s *Server) snapshotConfig() serverConfig {
	s.configLock.Lock()
	defer s.configLock.Unlock()

	headers := make(map[string]string, len(s.headers))
	for k, v := range s.headers {
		headers[k] = v
	}

	return serverConfig{
		address:             s.address,
		token:               s.token,
		authRequired:        s.authRequired,
		timeout:             s.timeout,
		allowedOrigins:      append([]string(nil), s.allowedOrigins...),
		compressionMinBytes: s.compressionMinBytes,
		headers:             headers,
		routes:              append([]route(nil), s.routes...),
	}
}
