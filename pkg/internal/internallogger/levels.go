package internallogger

import (
	"strings"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelNames = map[string]types.LogLevel{
	"debug":   types.DebugLevel,
	"info":    types.InfoLevel,
	"warn":    types.WarnLevel,
	"warning": types.WarnLevel,
	"error":   types.ErrorLevel,
	"dpanic":  types.DPanicLevel,
	"panic":   types.PanicLevel,
	"fatal":   types.FatalLevel,
}

// zapLevels is indexed by types.LogLevel.
var zapLevels = [...]zapcore.Level{
	types.DebugLevel:  zapcore.DebugLevel,
	types.InfoLevel:   zapcore.InfoLevel,
	types.WarnLevel:   zapcore.WarnLevel,
	types.ErrorLevel:  zapcore.ErrorLevel,
	types.DPanicLevel: zapcore.DPanicLevel,
	types.PanicLevel:  zapcore.PanicLevel,
	types.FatalLevel:  zapcore.FatalLevel,
}

// ParseLevel maps a level name to a LogLevel, defaulting to info.
func ParseLevel(name string) types.LogLevel {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return types.InfoLevel
}

func levelToZap(level types.LogLevel) zapcore.Level {
	if level < 0 || int(level) >= len(zapLevels) {
		return zapcore.InfoLevel
	}
	return zapLevels[level]
}

func levelFromZap(level zapcore.Level) types.LogLevel {
	for lvl, zl := range zapLevels {
		if zl == level {
			return types.LogLevel(lvl)
		}
	}
	return types.InfoLevel
}
