package host

import "github.com/joeydtaylor/quill/pkg/internal/types"

func (h *Host) ConnectLogger(loggers ...types.Logger) {
	h.loggers.Connect(loggers...)
}

func (h *Host) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	h.loggers.Notify(level, msg, keysAndValues...)
}
