package instance

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Serve accepts hand-offs on the primary's listener until ctx is cancelled, passing
// each launch's argv to handler. Relative file arguments are resolved against the
// launching process's working directory. The lock is released on return.
func (i *Instance) Serve(ctx context.Context, handler types.LaunchHandler) error {
	if !i.primary {
		return ErrNotPrimary
	}
	if handler == nil {
		return errors.New("instance: nil launch handler")
	}
	defer i.Release()

	mux := http.NewServeMux()
	mux.HandleFunc(Endpoint, func(w http.ResponseWriter, r *http.Request) {
		i.handleLaunch(ctx, w, r, handler)
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: i.handshakeTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		i.NotifyLoggers(types.InfoLevel, "Serve: accepting hand-offs", "component", i.componentMetadata, "event", "ServeStart", "address", i.record.Address)
		errCh <- server.Serve(i.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			i.NotifyLoggers(types.ErrorLevel, "Serve: server error", "component", i.componentMetadata, "event", "ServeError", "error", err)
			return err
		}
		return nil
	}
}

func (i *Instance) handleLaunch(ctx context.Context, w http.ResponseWriter, r *http.Request, handler types.LaunchHandler) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	token := r.Header.Get(TokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(i.record.Token)) != 1 {
		i.NotifyLoggers(types.WarnLevel, "Auth: hand-off rejected", "component", i.componentMetadata, "event", "AuthReject", "remote", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		i.NotifyLoggers(types.ErrorLevel, "Accept: error", "component", i.componentMetadata, "event", "AcceptError", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "hand-off failed")

	readCtx, cancel := context.WithTimeout(r.Context(), i.handshakeTimeout)
	defer cancel()

	var msg LaunchMessage
	if err := wsjson.Read(readCtx, conn, &msg); err != nil {
		i.NotifyLoggers(types.WarnLevel, "Launch: read error", "component", i.componentMetadata, "event", "LaunchRead", "error", err)
		return
	}

	argv := ResolveArgs(msg.Args, msg.Cwd)
	i.NotifyLoggers(types.InfoLevel, "Launch: received", "component", i.componentMetadata, "event", "Launch", "args", len(argv))
	handler(ctx, argv)

	if err := wsjson.Write(readCtx, conn, launchAck{OK: true}); err != nil {
		i.NotifyLoggers(types.WarnLevel, "Launch: ack error", "component", i.componentMetadata, "event", "LaunchAck", "error", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// ResolveArgs joins relative file arguments onto cwd. argv[0] and flag-like
// arguments are left untouched, as is everything when cwd is empty.
func ResolveArgs(argv []string, cwd string) []string {
	if len(argv) == 0 {
		return []string{}
	}
	if cwd == "" {
		return append([]string(nil), argv...)
	}
	rest := utils.Map(argv[1:], func(arg string) string {
		if arg == "" || strings.HasPrefix(arg, "-") || filepath.IsAbs(arg) {
			return arg
		}
		return filepath.Join(cwd, arg)
	})
	return append([]string{argv[0]}, rest...)
}
