// Package instance enforces a single running host per data directory. The first
// process to claim the lock file becomes the primary and listens on loopback for
// hand-offs; later processes find the lock, forward their argv and exit.
package instance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/joeydtaylor/quill/pkg/internal/appdata"
	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

const (
	// LockFileName is the lock file created inside the data directory.
	LockFileName = "instance.lock"
	// GuardFileName is the advisory lock held while the lock file is claimed,
	// judged or reclaimed.
	GuardFileName = "instance.lock.guard"
	// TokenHeader carries the primary's hand-off token.
	TokenHeader = "X-Quill-Instance-Token"
	// Endpoint is the hand-off websocket path.
	Endpoint = "/instance"

	defaultHandshakeTimeout = 5 * time.Second
	maxAcquireAttempts      = 3
	guardRetryDelay         = 10 * time.Millisecond
)

// ErrNotPrimary is returned by primary-only operations on a secondary instance.
var ErrNotPrimary = errors.New("instance: not the primary instance")

// ErrPrimary is returned by Forward on the primary instance.
var ErrPrimary = errors.New("instance: already the primary instance")

// Record is the lock file body.
type Record struct {
	PID     int       `json:"pid"`
	Address string    `json:"address"`
	Token   string    `json:"token"`
	Started time.Time `json:"started"`
}

// LaunchMessage is sent by a secondary launch.
type LaunchMessage struct {
	Args []string `json:"args"`
	Cwd  string   `json:"cwd"`
}

type launchAck struct {
	OK bool `json:"ok"`
}

// AliveFunc reports whether the process that wrote a lock record is still running.
type AliveFunc func(rec Record) bool

// Instance is the outcome of Acquire.
type Instance struct {
	componentMetadata types.ComponentMetadata

	lockPath         string
	guardPath        string
	primary          bool
	record           Record
	listener         net.Listener
	alive            AliveFunc
	handshakeTimeout time.Duration

	releaseOnce sync.Once

	loggers internallogger.Fanout
}

// WithAliveFunc replaces the process liveness check used to detect stale locks.
func WithAliveFunc(fn AliveFunc) types.Option[*Instance] {
	return func(i *Instance) {
		if fn != nil {
			i.alive = fn
		}
	}
}

// WithHandshakeTimeout bounds one hand-off exchange.
func WithHandshakeTimeout(d time.Duration) types.Option[*Instance] {
	return func(i *Instance) {
		if d > 0 {
			i.handshakeTimeout = d
		}
	}
}

// WithLogger attaches loggers to the instance.
func WithLogger(loggers ...types.Logger) types.Option[*Instance] {
	return func(i *Instance) {
		i.ConnectLogger(loggers...)
	}
}

// Acquire claims the lock in dir. On success the returned Instance is the primary
// and holds a bound loopback listener. If a live process already holds the lock the
// Instance is a secondary that can Forward to it. A lock left by a dead process, or
// one that cannot be parsed, is reclaimed. Concurrent launches serialize on an
// advisory lock, so a lock judged stale is the one that gets removed.
func Acquire(ctx context.Context, dir string, options ...types.Option[*Instance]) (*Instance, error) {
	inst := &Instance{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "INSTANCE",
		},
		lockPath:         filepath.Join(dir, LockFileName),
		guardPath:        filepath.Join(dir, GuardFileName),
		alive:            processAlive,
		handshakeTimeout: defaultHandshakeTimeout,
	}
	for _, opt := range options {
		opt(inst)
	}

	if err := appdata.EnsureDir(dir); err != nil {
		return nil, types.NewIOError("mkdir", dir, err)
	}

	guard, err := inst.lockGuard(ctx)
	if err != nil {
		return nil, err
	}
	defer guard.Unlock()

	for attempt := 0; attempt < maxAcquireAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		claimed, err := inst.tryClaim()
		if err != nil {
			return nil, err
		}
		if claimed {
			inst.NotifyLoggers(types.InfoLevel, "Acquire: primary instance", "component", inst.componentMetadata, "event", "Acquire", "result", "PRIMARY", "address", inst.record.Address)
			return inst, nil
		}

		rec, err := readRecord(inst.lockPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			inst.NotifyLoggers(types.WarnLevel, "Acquire: unreadable lock, reclaiming", "component", inst.componentMetadata, "event", "Acquire", "error", err)
		case inst.alive(rec):
			inst.record = rec
			inst.NotifyLoggers(types.InfoLevel, "Acquire: secondary instance", "component", inst.componentMetadata, "event", "Acquire", "result", "SECONDARY", "pid", rec.PID)
			return inst, nil
		default:
			inst.NotifyLoggers(types.WarnLevel, "Acquire: stale lock, reclaiming", "component", inst.componentMetadata, "event", "Acquire", "pid", rec.PID)
		}

		if err := os.Remove(inst.lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, types.NewIOError("remove", inst.lockPath, err)
		}
	}
	return nil, fmt.Errorf("instance: could not acquire %s after %d attempts", inst.lockPath, maxAcquireAttempts)
}

func (i *Instance) lockGuard(ctx context.Context) (*flock.Flock, error) {
	guard := flock.New(i.guardPath)
	locked, err := guard.TryLockContext(ctx, guardRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, types.NewIOError("lock", i.guardPath, err)
	}
	if !locked {
		return nil, types.NewIOError("lock", i.guardPath, errors.New("guard not acquired"))
	}
	return guard, nil
}

// tryClaim binds the listener and links a fully written record into place, so a
// reader never observes a partial lock file.
func (i *Instance) tryClaim() (bool, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return false, err
	}

	rec := Record{
		PID:     os.Getpid(),
		Address: ln.Addr().String(),
		Token:   utils.NewToken(),
		Started: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		ln.Close()
		return false, err
	}

	tmp := fmt.Sprintf("%s.%d.tmp", i.lockPath, rec.PID)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		ln.Close()
		return false, types.NewIOError("write", tmp, err)
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, i.lockPath); err != nil {
		ln.Close()
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, types.NewIOError("write", i.lockPath, err)
	}

	i.primary = true
	i.record = rec
	i.listener = ln
	return true, nil
}

func readRecord(path string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	if rec.PID <= 0 || rec.Address == "" {
		return rec, errors.New("instance: incomplete lock record")
	}
	return rec, nil
}

// IsPrimary reports whether this process holds the lock.
func (i *Instance) IsPrimary() bool { return i.primary }

// Record returns the lock record: this process's when primary, the holder's otherwise.
func (i *Instance) Record() Record { return i.record }

// LockPath returns the lock file path.
func (i *Instance) LockPath() string { return i.lockPath }

// Release closes the listener and removes the lock file if this process still owns it.
// It is a no-op on a secondary.
func (i *Instance) Release() error {
	if !i.primary {
		return nil
	}
	var err error
	i.releaseOnce.Do(func() {
		if i.listener != nil {
			_ = i.listener.Close()
		}
		ctx, cancel := context.WithTimeout(context.Background(), i.handshakeTimeout)
		defer cancel()
		guard, guardErr := i.lockGuard(ctx)
		if guardErr != nil {
			err = guardErr
			return
		}
		defer guard.Unlock()

		rec, readErr := readRecord(i.lockPath)
		if readErr != nil || rec.PID != i.record.PID || rec.Token != i.record.Token {
			return
		}
		if rmErr := os.Remove(i.lockPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = types.NewIOError("remove", i.lockPath, rmErr)
		}
		i.NotifyLoggers(types.InfoLevel, "Release: lock removed", "component", i.componentMetadata, "event", "Release", "result", "SUCCESS")
	})
	return err
}
