package window

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
	"nhooyr.io/websocket"
)

const (
	defaultSendBuffer   = 64
	defaultWriteTimeout = 5 * time.Second
	defaultReadLimit    = 64 * 1024
)

// EventWindow is a types.Window backed by the front end's event socket. Every
// connected front end receives each event as a JSON text message. Events emitted
// while nothing is connected are held (up to the send buffer) and replayed to the
// first connection.
type EventWindow struct {
	ctx               context.Context
	componentMetadata types.ComponentMetadata

	allowedOrigins []string
	sendBuffer     int
	writeTimeout   time.Duration
	readLimit      int64

	connsMu sync.Mutex
	conns   map[*websocket.Conn]*wsConn
	pending []outboundMessage

	loggers internallogger.Fanout
}

// NewEventWindow returns an event window whose connections live until ctx is done.
func NewEventWindow(ctx context.Context, options ...types.Option[*EventWindow]) *EventWindow {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &EventWindow{
		ctx: ctx,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "EVENT_WINDOW",
		},
		sendBuffer:   defaultSendBuffer,
		writeTimeout: defaultWriteTimeout,
		readLimit:    defaultReadLimit,
		conns:        make(map[*websocket.Conn]*wsConn),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// WithAllowedOrigins sets the websocket origin patterns accepted besides same-host.
func WithAllowedOrigins(origins ...string) types.Option[*EventWindow] {
	return func(w *EventWindow) {
		w.allowedOrigins = append(w.allowedOrigins, origins...)
	}
}

// WithSendBuffer sets the per-connection queue depth and the replay backlog size.
func WithSendBuffer(n int) types.Option[*EventWindow] {
	return func(w *EventWindow) {
		if n > 0 {
			w.sendBuffer = n
		}
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(d time.Duration) types.Option[*EventWindow] {
	return func(w *EventWindow) {
		w.writeTimeout = d
	}
}

// WithEventWindowLogger attaches loggers to the event window.
func WithEventWindowLogger(loggers ...types.Logger) types.Option[*EventWindow] {
	return func(w *EventWindow) {
		w.ConnectLogger(loggers...)
	}
}

// Emit pushes one named event to every connected front end.
func (w *EventWindow) Emit(ctx context.Context, event string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event == "" {
		return errors.New("window: empty event name")
	}
	data, err := json.Marshal(types.Event{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return w.broadcast(outboundMessage{messageType: websocket.MessageText, payload: data}, event)
}

// Show asks the front end to show its window.
func (w *EventWindow) Show(ctx context.Context) error {
	return w.Emit(ctx, types.EventWindowShow, nil)
}

// Unminimize asks the front end to restore its window.
func (w *EventWindow) Unminimize(ctx context.Context) error {
	return w.Emit(ctx, types.EventWindowUnminimize, nil)
}

// SetFocus asks the front end to focus its window.
func (w *EventWindow) SetFocus(ctx context.Context) error {
	return w.Emit(ctx, types.EventWindowFocus, nil)
}

// SetAlwaysOnTop toggles the front end's always-on-top flag.
func (w *EventWindow) SetAlwaysOnTop(ctx context.Context, onTop bool) error {
	return w.Emit(ctx, types.EventWindowOnTop, onTop)
}

// ConnectionCount reports the number of live front-end connections.
func (w *EventWindow) ConnectionCount() int {
	return w.connectionCount()
}

// Close drops every connection.
func (w *EventWindow) Close() {
	w.closeAllConnections("window closing")
}

// ServeHTTP upgrades the request to the event socket.
func (w *EventWindow) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := websocket.Accept(rw, r, &websocket.AcceptOptions{OriginPatterns: originPatterns(w.allowedOrigins)})
	if err != nil {
		w.NotifyLoggers(types.ErrorLevel, "Accept: error", "component", w.componentMetadata, "event", "AcceptError", "error", err)
		return
	}
	if w.readLimit > 0 {
		conn.SetReadLimit(w.readLimit)
	}

	wc := w.addConn(conn)
	w.NotifyLoggers(types.InfoLevel, "Connection accepted", "component", w.componentMetadata, "event", "ConnectionAccepted", "remote", r.RemoteAddr)

	go w.runConn(wc, r.RemoteAddr)
}

// originPatterns turns configured origins into the host patterns the websocket
// handshake matches. No configured origins admits any origin.
func originPatterns(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return utils.Map(origins, func(o string) string {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			return u.Host
		}
		return o
	})
}

// broadcast queues msg on every connection. When no connection can take it
// because none exist or all are closing, msg is held for the next one.
func (w *EventWindow) broadcast(msg outboundMessage, event string) error {
	w.connsMu.Lock()
	queued, full := 0, 0
	for _, c := range w.conns {
		switch c.enqueue(msg) {
		case enqueued:
			queued++
		case queueFull:
			full++
		}
	}
	if queued == 0 && full == 0 {
		w.holdLocked(msg)
		w.connsMu.Unlock()
		w.NotifyLoggers(types.DebugLevel, "Emit: no front end connected, event held", "component", w.componentMetadata, "event", event, "result", "PENDING")
		return nil
	}
	w.connsMu.Unlock()

	if full > 0 {
		w.NotifyLoggers(types.WarnLevel, "Emit: dropped event for slow connections", "component", w.componentMetadata, "event", event, "dropped", full)
	}
	if queued == 0 {
		return errors.New("window: event not delivered to any front end")
	}
	return nil
}

func (w *EventWindow) runConn(conn *wsConn, remote string) {
	ctx, cancel := context.WithCancel(w.ctx)
	defer cancel()
	defer w.dropConn(conn)
	defer conn.close(websocket.StatusNormalClosure, "closing")

	errCh := make(chan error, 2)
	go func() { errCh <- w.writeLoop(ctx, conn) }()
	go func() { errCh <- w.readLoop(ctx, conn) }()

	select {
	case <-ctx.Done():
	case <-conn.done:
	case err := <-errCh:
		if err != nil && !isNormalClose(err) {
			w.NotifyLoggers(types.WarnLevel, "Connection error", "component", w.componentMetadata, "event", "ConnectionError", "remote", remote, "error", err)
		}
	}
	w.NotifyLoggers(types.InfoLevel, "Connection closed", "component", w.componentMetadata, "event", "ConnectionClosed", "remote", remote)
}

// readLoop drains front-end messages; the socket is push-only.
func (w *EventWindow) readLoop(ctx context.Context, conn *wsConn) error {
	for {
		if _, _, err := conn.conn.Read(ctx); err != nil {
			return err
		}
	}
}

func (w *EventWindow) writeLoop(ctx context.Context, conn *wsConn) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-conn.send:
			if !ok {
				return nil
			}
			writeCtx := ctx
			var cancel context.CancelFunc
			if w.writeTimeout > 0 {
				writeCtx, cancel = context.WithTimeout(ctx, w.writeTimeout)
			}
			err := conn.conn.Write(writeCtx, msg.messageType, msg.payload)
			if cancel != nil {
				cancel()
			}
			if err != nil {
				return err
			}
		}
	}
}

func isNormalClose(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled)
}
