package window

import (
	"sync"

	"nhooyr.io/websocket"
)

type outboundMessage struct {
	messageType websocket.MessageType
	payload     []byte
}

type wsConn struct {
	conn *websocket.Conn
	send chan outboundMessage
	done chan struct{}

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn, buffer int) *wsConn {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &wsConn{
		conn: conn,
		send: make(chan outboundMessage, buffer),
		done: make(chan struct{}),
	}
}

type enqueueResult int

const (
	enqueued enqueueResult = iota
	queueFull
	connClosed
)

func (c *wsConn) enqueue(msg outboundMessage) enqueueResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return connClosed
	}
	select {
	case c.send <- msg:
		return enqueued
	default:
		return queueFull
	}
}

func (c *wsConn) close(code websocket.StatusCode, reason string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.done)
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close(code, reason)
	})
}

// addConn registers conn and hands it any events held while nothing was connected.
func (w *EventWindow) addConn(conn *websocket.Conn) *wsConn {
	w.connsMu.Lock()
	defer w.connsMu.Unlock()

	wc := newWSConn(conn, w.sendBuffer)
	for _, msg := range w.pending {
		wc.enqueue(msg)
	}
	w.pending = nil
	w.conns[conn] = wc
	return wc
}

// holdLocked keeps msg for the next connection, dropping the oldest held event
// once the send buffer is full. The caller holds connsMu.
func (w *EventWindow) holdLocked(msg outboundMessage) {
	if len(w.pending) >= w.sendBuffer {
		w.pending = w.pending[1:]
	}
	w.pending = append(w.pending, msg)
}

func (w *EventWindow) dropConn(conn *wsConn) {
	w.connsMu.Lock()
	delete(w.conns, conn.conn)
	w.connsMu.Unlock()
}

func (w *EventWindow) connectionCount() int {
	w.connsMu.Lock()
	defer w.connsMu.Unlock()
	return len(w.conns)
}

func (w *EventWindow) closeAllConnections(reason string) {
	w.connsMu.Lock()
	conns := make([]*wsConn, 0, len(w.conns))
	for _, c := range w.conns {
		conns = append(conns, c)
	}
	w.connsMu.Unlock()

	for _, c := range conns {
		c.close(websocket.StatusNormalClosure, reason)
	}
}
