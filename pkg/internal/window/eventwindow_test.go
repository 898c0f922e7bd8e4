package window

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func newTestWindow(t *testing.T, options ...func(*EventWindow)) (*EventWindow, *httptest.Server, string) {
	t.Helper()
	w := NewEventWindow(context.Background())
	for _, opt := range options {
		opt(w)
	}
	ts := httptest.NewServer(w)
	return w, ts, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	msgType, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != websocket.MessageText {
		t.Fatalf("expected text message, got %v", msgType)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return out
}

func TestEventWindow_EmitDelivers(t *testing.T) {
	w, ts, url := newTestWindow(t)
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	if err := w.Emit(ctx, "open-files", []string{"a.txt"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	got := readEvent(t, ctx, conn)
	if got["event"] != "open-files" {
		t.Fatalf("unexpected event: %v", got)
	}
	payload, ok := got["payload"].([]interface{})
	if !ok || len(payload) != 1 || payload[0] != "a.txt" {
		t.Fatalf("unexpected payload: %v", got["payload"])
	}
}

func TestEventWindow_PendingReplayed(t *testing.T) {
	w, ts, url := newTestWindow(t)
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := w.Show(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := w.SetAlwaysOnTop(ctx, true); err != nil {
		t.Fatalf("ontop: %v", err)
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	if got := readEvent(t, ctx, conn); got["event"] != "window:show" {
		t.Fatalf("expected window:show first, got %v", got)
	}
	got := readEvent(t, ctx, conn)
	if got["event"] != "window:always-on-top" || got["payload"] != true {
		t.Fatalf("unexpected second event: %v", got)
	}
}

func TestEventWindow_PendingBounded(t *testing.T) {
	w, ts, url := newTestWindow(t, func(w *EventWindow) { WithSendBuffer(2)(w) })
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = w.Emit(ctx, "first", nil)
	_ = w.Emit(ctx, "second", nil)
	_ = w.Emit(ctx, "third", nil)

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	if got := readEvent(t, ctx, conn); got["event"] != "second" {
		t.Fatalf("expected oldest event dropped, got %v", got)
	}
	if got := readEvent(t, ctx, conn); got["event"] != "third" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestEventWindow_HoldsEventWhileOnlyConnectionCloses(t *testing.T) {
	w, ts, url := newTestWindow(t)
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	closing := &wsConn{send: make(chan outboundMessage, 1), done: make(chan struct{}), closed: true}
	key := new(websocket.Conn)
	w.connsMu.Lock()
	w.conns[key] = closing
	w.connsMu.Unlock()

	if err := w.Emit(ctx, "open-files", []string{"late.txt"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	w.connsMu.Lock()
	held := len(w.pending)
	delete(w.conns, key)
	w.connsMu.Unlock()
	if held != 1 {
		t.Fatalf("expected event held for the next connection, pending = %d", held)
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	if got := readEvent(t, ctx, conn); got["event"] != "open-files" {
		t.Fatalf("expected held open-files event, got %v", got)
	}
}

func TestEventWindow_RedirectThroughRegistry(t *testing.T) {
	w, ts, url := newTestWindow(t)
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	r := NewRegistry(WithForceForeground(false))
	if err := r.Register(w); err != nil {
		t.Fatalf("register: %v", err)
	}
	r.Redirect(ctx, []string{"quill", "notes.txt"})

	want := []string{"open-files", "window:show", "window:unminimize", "window:focus"}
	for _, name := range want {
		if got := readEvent(t, ctx, conn); got["event"] != name {
			t.Fatalf("expected %s, got %v", name, got)
		}
	}
}

func TestEventWindow_RejectsNonGet(t *testing.T) {
	w, ts, _ := newTestWindow(t)
	defer ts.Close()
	defer w.Close()

	resp, err := http.Post(ts.URL, "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestEventWindow_EmptyEventName(t *testing.T) {
	w := NewEventWindow(context.Background())
	if err := w.Emit(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty event name")
	}
}

func TestEventWindow_CloseDropsConnections(t *testing.T) {
	w, ts, url := newTestWindow(t)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	deadline := time.Now().Add(time.Second)
	for w.ConnectionCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w.Close()
	if _, _, err := conn.Read(ctx); err == nil {
		t.Fatal("expected read error after Close")
	}
}

func TestOriginPatterns(t *testing.T) {
	if got := originPatterns(nil); len(got) != 1 || got[0] != "*" {
		t.Fatalf("empty origins: %v", got)
	}
	got := originPatterns([]string{"http://127.0.0.1:1420", "tauri://localhost", "*.quill.local"})
	want := []string{"127.0.0.1:1420", "localhost", "*.quill.local"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("originPatterns = %v, want %v", got, want)
		}
	}
}

func TestEventWindow_OriginCheck(t *testing.T) {
	w, ts, wsURL := newTestWindow(t, func(w *EventWindow) {
		w.allowedOrigins = []string{"http://app.quill.local:1420"}
	})
	defer ts.Close()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	good := http.Header{}
	good.Set("Origin", "http://app.quill.local:1420")
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{HTTPHeader: good})
	if err != nil {
		t.Fatalf("allowed origin rejected: %v", err)
	}
	conn.Close(websocket.StatusNormalClosure, "")

	bad := http.Header{}
	bad.Set("Origin", "http://evil.example")
	if _, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{HTTPHeader: bad}); err == nil {
		t.Fatal("expected foreign origin to be rejected")
	}
}
