package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/quill/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerAdapter implements types.Logger on top of zap. Output always goes to
// stdout; named sinks are teed alongside it.
type ZapLoggerAdapter struct {
	level     zap.AtomicLevel
	encConfig zapcore.EncoderConfig
	base      zapcore.Core
	fields    []zap.Field
	zapOpts   []zap.Option
	redactor  *pathRedactor

	mu     sync.Mutex
	logger *zap.Logger
	sinks  map[string]sinkEntry
}

// NewLogger builds a logger writing JSON lines to stdout.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	s := defaultSettings()
	for _, opt := range options {
		opt(&s)
	}

	enc := encoderConfig(s.development)
	level := zap.NewAtomicLevelAt(levelToZap(s.level))

	zapOpts := []zap.Option{zap.AddCallerSkip(s.callerSkip)}
	if !s.disableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}

	z := &ZapLoggerAdapter{
		level:     level,
		encConfig: enc,
		base:      zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level),
		fields:    s.baseFields(),
		zapOpts:   zapOpts,
		redactor:  newPathRedactor(s.redactHome),
		sinks:     make(map[string]sinkEntry),
	}

	z.mu.Lock()
	z.rebuildLocked()
	z.mu.Unlock()
	return z
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        logschema.FieldTimestamp,
		LevelKey:       logschema.FieldLevel,
		NameKey:        logschema.FieldLogger,
		CallerKey:      logschema.FieldCaller,
		MessageKey:     logschema.FieldMessage,
		StacktraceKey:  logschema.FieldStack,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00"),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return enc
}

// rebuildLocked tees the base core with every sink. Callers hold z.mu.
func (z *ZapLoggerAdapter) rebuildLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.base)
	for _, id := range sortedKeys(z.sinks) {
		cores = append(cores, z.sinks[id].core)
	}
	z.logger = zap.New(zapcore.NewTee(cores...), z.zapOpts...).With(z.fields...)
}

func (z *ZapLoggerAdapter) current() *zap.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logger
}
