package shell

import "github.com/joeydtaylor/quill/pkg/internal/types"

// ConnectLogger attaches logger(s).
func (s *Shell) ConnectLogger(loggers ...types.Logger) {
	s.loggers.Connect(loggers...)
}

// NotifyLoggers logs a message to all attached loggers.
func (s *Shell) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggers.Notify(level, msg, keysAndValues...)
}
