package instance

import "github.com/joeydtaylor/quill/pkg/internal/types"

func (i *Instance) ConnectLogger(loggers ...types.Logger) {
	i.loggers.Connect(loggers...)
}

func (i *Instance) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	i.loggers.Notify(level, msg, keysAndValues...)
}
