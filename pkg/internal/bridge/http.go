package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joeydtaylor/quill/pkg/internal/compression"
	"github.com/joeydtaylor/quill/pkg/internal/types"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleInvoke(cfg serverConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			s.writeError(w, r, cfg, &types.BridgeError{StatusCode: http.StatusMethodNotAllowed, Kind: types.ErrorKindArgs, Message: "method not allowed"})
			return
		}

		if err := s.authorizeRequest(r, cfg, false); err != nil {
			s.NotifyLoggers(types.WarnLevel, "Auth: request rejected", "component", s.componentMetadata, "event", "AuthReject", "path", r.URL.Path, "error", err)
			s.writeError(w, r, cfg, &types.BridgeError{StatusCode: http.StatusUnauthorized, Kind: types.ErrorKindAuth, Message: err.Error()})
			return
		}

		name := r.PathValue("command")
		if _, ok := s.lookup(name); !ok {
			s.writeError(w, r, cfg, &types.BridgeError{StatusCode: http.StatusNotFound, Kind: types.ErrorKindNotFound, Message: "unknown command: " + name})
			return
		}

		args, err := readArgs(w, r)
		if err != nil {
			s.writeError(w, r, cfg, err)
			return
		}

		ctx := r.Context()
		if cfg.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
			defer cancel()
		}

		result, err := s.Invoke(ctx, name, args)
		if err != nil {
			s.writeError(w, r, cfg, err)
			return
		}
		s.writeJSON(w, r, cfg, http.StatusOK, result)
	}
}

// readArgs returns the request's JSON argument object, undoing any Content-Encoding.
// An empty body yields nil args.
func readArgs(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return nil, &types.BridgeError{StatusCode: http.StatusRequestEntityTooLarge, Kind: types.ErrorKindArgs, Message: "request body too large", Err: err}
	}

	if enc := strings.TrimSpace(r.Header.Get("Content-Encoding")); enc != "" {
		alg, ok := compression.Parse(enc)
		if !ok {
			return nil, &types.BridgeError{StatusCode: http.StatusUnsupportedMediaType, Kind: types.ErrorKindArgs, Message: "unsupported content encoding: " + enc}
		}
		body, err = compression.DecompressLimit(body, alg, maxRequestBytes)
		if errors.Is(err, compression.ErrTooLarge) {
			return nil, &types.BridgeError{StatusCode: http.StatusRequestEntityTooLarge, Kind: types.ErrorKindArgs, Message: "decoded request body too large", Err: err}
		}
		if err != nil {
			return nil, &types.BridgeError{StatusCode: http.StatusBadRequest, Kind: types.ErrorKindArgs, Message: "invalid compressed body", Err: err}
		}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, &types.BridgeError{StatusCode: http.StatusBadRequest, Kind: types.ErrorKindArgs, Message: "invalid JSON arguments"}
	}
	return json.RawMessage(body), nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, cfg serverConfig, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	var bridgeErr *types.BridgeError
	if errors.As(err, &bridgeErr) {
		if bridgeErr.StatusCode != 0 {
			status = bridgeErr.StatusCode
		}
		if bridgeErr.Message != "" {
			msg = bridgeErr.Message
		}
	}
	s.writeJSON(w, r, cfg, status, errorBody{Error: msg, Kind: types.ErrorKind(err)})
}

// writeJSON marshals v and compresses it when the client accepts a supported
// coding and the body reaches the configured threshold.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, cfg serverConfig, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.NotifyLoggers(types.ErrorLevel, "Respond: marshal error", "component", s.componentMetadata, "event", "Respond", "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: fmt.Sprintf("unencodable result: %v", err), Kind: types.ErrorKindInternal})
	}

	for key, val := range cfg.headers {
		w.Header().Set(key, val)
	}
	w.Header().Set("Content-Type", "application/json")

	if cfg.compressionMinBytes >= 0 && len(data) >= cfg.compressionMinBytes {
		w.Header().Add("Vary", "Accept-Encoding")
		if alg := compression.Negotiate(r.Header.Get("Accept-Encoding")); alg != compression.Identity {
			compressed, err := compression.Compress(data, alg)
			if err == nil {
				data = compressed
				w.Header().Set("Content-Encoding", string(alg))
			} else {
				s.NotifyLoggers(types.WarnLevel, "Respond: compression failed, sending identity", "component", s.componentMetadata, "event", "Compress", "algorithm", string(alg), "error", err)
			}
		}
	}

	w.WriteHeader(status)
	_, _ = w.Write(data)
}
