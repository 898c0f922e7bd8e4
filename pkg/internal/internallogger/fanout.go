package internallogger

import (
	"sync"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// Fanout is the set of loggers a component reports to. The zero value is ready
// to use and safe for concurrent use.
type Fanout struct {
	mu      sync.RWMutex
	loggers []types.Logger
}

// Connect adds loggers, skipping nils.
func (f *Fanout) Connect(loggers ...types.Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range loggers {
		if l != nil {
			f.loggers = append(f.loggers, l)
		}
	}
}

// Loggers returns a copy of the connected loggers.
func (f *Fanout) Loggers() []types.Logger {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]types.Logger(nil), f.loggers...)
}

// Notify sends msg to every connected logger. Each logger applies its own level
// and the levels of its sinks.
func (f *Fanout) Notify(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, l := range f.Loggers() {
		switch level {
		case types.DebugLevel:
			l.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			l.Info(msg, keysAndValues...)
		case types.WarnLevel:
			l.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			l.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			l.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			l.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			l.Fatal(msg, keysAndValues...)
		}
	}
}
