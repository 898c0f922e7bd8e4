package window

import "github.com/joeydtaylor/quill/pkg/internal/types"

func (r *Registry) ConnectLogger(loggers ...types.Logger) {
	r.loggers.Connect(loggers...)
}

func (r *Registry) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	r.loggers.Notify(level, msg, keysAndValues...)
}

func (w *EventWindow) ConnectLogger(loggers ...types.Logger) {
	w.loggers.Connect(loggers...)
}

func (w *EventWindow) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	w.loggers.Notify(level, msg, keysAndValues...)
}
