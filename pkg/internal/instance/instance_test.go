package instance

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func alwaysAlive(Record) bool { return true }
func neverAlive(Record) bool  { return false }

func TestAcquire_PrimaryWritesLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	inst, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer inst.Release()

	if !inst.IsPrimary() {
		t.Fatal("expected primary instance")
	}
	data, err := os.ReadFile(filepath.Join(dir, LockFileName))
	if err != nil {
		t.Fatalf("read lock: %v", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("decode lock: %v", err)
	}
	if rec.PID != os.Getpid() || rec.Address == "" || rec.Token == "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec != inst.Record() {
		t.Fatalf("record mismatch: %+v vs %+v", rec, inst.Record())
	}
	entries, _ := os.ReadDir(dir)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if want := []string{LockFileName, GuardFileName}; !reflect.DeepEqual(names, want) {
		t.Fatalf("data dir entries = %v, want %v", names, want)
	}
}

func TestAcquire_SecondaryWhenHeld(t *testing.T) {
	dir := t.TempDir()
	primary, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("acquire primary: %v", err)
	}
	defer primary.Release()

	secondary, err := Acquire(context.Background(), dir, WithAliveFunc(alwaysAlive))
	if err != nil {
		t.Fatalf("acquire secondary: %v", err)
	}
	if secondary.IsPrimary() {
		t.Fatal("expected secondary instance")
	}
	if secondary.Record() != primary.Record() {
		t.Fatalf("secondary should see primary record: %+v vs %+v", secondary.Record(), primary.Record())
	}
	if err := secondary.Serve(context.Background(), func(context.Context, []string) {}); err != ErrNotPrimary {
		t.Fatalf("expected ErrNotPrimary, got %v", err)
	}
	if err := primary.Forward(context.Background(), nil); err != ErrPrimary {
		t.Fatalf("expected ErrPrimary, got %v", err)
	}
}

func TestAcquire_ReclaimsStaleLock(t *testing.T) {
	dir := t.TempDir()
	stale := Record{PID: 999999, Address: "127.0.0.1:1", Token: "old"}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(filepath.Join(dir, LockFileName), data, 0o600); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	inst, err := Acquire(context.Background(), dir, WithAliveFunc(neverAlive))
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer inst.Release()

	if !inst.IsPrimary() {
		t.Fatal("expected stale lock to be reclaimed")
	}
	if inst.Record().Token == "old" {
		t.Fatal("expected a fresh record")
	}
}

func TestAcquire_ConcurrentReclaimHasOnePrimary(t *testing.T) {
	dir := t.TempDir()
	stale := Record{PID: 999999, Address: "127.0.0.1:1", Token: "old"}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(filepath.Join(dir, LockFileName), data, 0o600); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	type result struct {
		inst *Instance
		err  error
	}
	other := make(chan result, 1)
	started := false

	// While this launch is judging the stale record, a second launch runs its
	// whole Acquire. It must not get past the reclaim in progress.
	judge := func(rec Record) bool {
		if rec.Token != "old" {
			return true
		}
		if !started {
			started = true
			go func() {
				inst, err := Acquire(context.Background(), dir, WithAliveFunc(func(r Record) bool {
					return r.Token != "old"
				}))
				other <- result{inst, err}
			}()
			select {
			case r := <-other:
				other <- r
			case <-time.After(200 * time.Millisecond):
			}
		}
		return false
	}

	first, err := Acquire(context.Background(), dir, WithAliveFunc(judge))
	if err != nil {
		t.Fatalf("acquire first: %v", err)
	}
	defer first.Release()

	var second result
	select {
	case second = <-other:
	case <-time.After(5 * time.Second):
		t.Fatal("second launch never finished Acquire")
	}
	if second.err != nil {
		t.Fatalf("acquire second: %v", second.err)
	}
	defer second.inst.Release()

	if first.IsPrimary() == second.inst.IsPrimary() {
		t.Fatalf("primary flags first=%v second=%v, want exactly one primary", first.IsPrimary(), second.inst.IsPrimary())
	}
	if !first.IsPrimary() {
		t.Fatal("expected the launch that reclaimed the stale lock to be primary")
	}
	if second.inst.Record() != first.Record() {
		t.Fatalf("secondary sees %+v, primary wrote %+v", second.inst.Record(), first.Record())
	}
}

func TestAcquire_ReclaimsCorruptLock(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	inst, err := Acquire(context.Background(), dir, WithAliveFunc(alwaysAlive))
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer inst.Release()
	if !inst.IsPrimary() {
		t.Fatal("expected corrupt lock to be reclaimed")
	}
}

func TestRelease_RemovesLock(t *testing.T) {
	dir := t.TempDir()
	inst, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := inst.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(inst.LockPath()); !os.IsNotExist(err) {
		t.Fatalf("expected lock removed, stat err = %v", err)
	}
	if err := inst.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}

	next, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	defer next.Release()
	if !next.IsPrimary() {
		t.Fatal("expected primary after release")
	}
}

func TestForward_DeliversResolvedArgs(t *testing.T) {
	dir := t.TempDir()
	primary, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("acquire primary: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []string, 1)
	served := make(chan error, 1)
	go func() {
		served <- primary.Serve(ctx, func(_ context.Context, argv []string) { got <- argv })
	}()

	secondary, err := Acquire(context.Background(), dir, WithAliveFunc(alwaysAlive))
	if err != nil {
		t.Fatalf("acquire secondary: %v", err)
	}

	cwd, _ := os.Getwd()
	abs := filepath.Join(cwd, "already", "abs.txt")
	if err := secondary.Forward(context.Background(), []string{"quill", "notes.txt", abs, "--flag"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	select {
	case argv := <-got:
		want := []string{"quill", filepath.Join(cwd, "notes.txt"), abs, "--flag"}
		if !reflect.DeepEqual(argv, want) {
			t.Fatalf("argv = %v, want %v", argv, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for launch")
	}

	cancel()
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop")
	}
	if _, err := os.Stat(primary.LockPath()); !os.IsNotExist(err) {
		t.Fatalf("expected lock released after serve, stat err = %v", err)
	}
}

func TestServe_RejectsBadToken(t *testing.T) {
	dir := t.TempDir()
	primary, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go primary.Serve(ctx, func(context.Context, []string) {})

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer dialCancel()

	header := http.Header{}
	header.Set(TokenHeader, "wrong")
	_, resp, err := websocket.Dial(dialCtx, "ws://"+primary.Record().Address+Endpoint, &websocket.DialOptions{HTTPHeader: header})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err == nil {
		t.Fatal("expected auth failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}
}

func TestResolveArgs(t *testing.T) {
	cwd := filepath.Join(string(filepath.Separator), "home", "user")
	tests := []struct {
		name string
		argv []string
		cwd  string
		want []string
	}{
		{"empty", nil, cwd, []string{}},
		{"exe only", []string{"quill"}, cwd, []string{"quill"}},
		{"relative", []string{"quill", "a.txt"}, cwd, []string{"quill", filepath.Join(cwd, "a.txt")}},
		{"flag", []string{"quill", "-v"}, cwd, []string{"quill", "-v"}},
		{"no cwd", []string{"quill", "a.txt"}, "", []string{"quill", "a.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveArgs(tt.argv, tt.cwd)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ResolveArgs(%v, %q) = %v, want %v", tt.argv, tt.cwd, got, tt.want)
			}
		})
	}
}

func TestProcessAlive_Self(t *testing.T) {
	if !processAlive(Record{PID: os.Getpid()}) {
		t.Fatal("expected own process to be alive")
	}
}
