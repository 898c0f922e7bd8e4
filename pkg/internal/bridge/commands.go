package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// Register adds a named command. Registering an existing name replaces it.
func (s *Server) Register(name string, fn types.CommandFunc) {
	if name == "" || fn == nil {
		return
	}
	s.commandsLock.Lock()
	s.commands[name] = fn
	s.commandsLock.Unlock()
}

// Commands lists the registered command names in order.
func (s *Server) Commands() []string {
	s.commandsLock.RLock()
	defer s.commandsLock.RUnlock()
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) lookup(name string) (types.CommandFunc, bool) {
	s.commandsLock.RLock()
	defer s.commandsLock.RUnlock()
	fn, ok := s.commands[name]
	return fn, ok
}

// Invoke runs a command directly. Unknown names yield a 404 BridgeError; a panicking
// command is reported as an internal error.
func (s *Server) Invoke(ctx context.Context, name string, args json.RawMessage) (result interface{}, err error) {
	fn, ok := s.lookup(name)
	if !ok {
		s.NotifyLoggers(types.WarnLevel, "Invoke: unknown command", "component", s.componentMetadata, "event", "Invoke", "command", name, "result", "NOT_FOUND")
		return nil, &types.BridgeError{StatusCode: http.StatusNotFound, Kind: types.ErrorKindNotFound, Message: "unknown command: " + name}
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &types.BridgeError{StatusCode: http.StatusInternalServerError, Kind: types.ErrorKindInternal, Message: fmt.Sprintf("command %s panicked: %v", name, r)}
		}
		if err != nil {
			s.NotifyLoggers(types.ErrorLevel, "Invoke: command failed", "component", s.componentMetadata, "event", "Invoke", "command", name, "result", "FAILURE", "kind", types.ErrorKind(err), "error", err, "duration", time.Since(start))
			return
		}
		s.NotifyLoggers(types.DebugLevel, "Invoke: command completed", "component", s.componentMetadata, "event", "Invoke", "command", name, "result", "SUCCESS", "duration", time.Since(start))
	}()

	return fn(ctx, args)
}
