package builder

import (
	"os"

	"github.com/joeydtaylor/quill/pkg/internal/internallogger"
	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/logschema"
)

type LoggerOption = internallogger.LoggerOption

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
)

// LogLevel is the severity used by every quill component.
type LogLevel = types.LogLevel

const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)

const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

func NewLogger(options ...LoggerOption) types.Logger {
	return internallogger.NewLogger(options...)
}

func LoggerWithLevel(name string) LoggerOption {
	return internallogger.LoggerWithLevel(name)
}

func LoggerWithDevelopment(dev bool) LoggerOption {
	return internallogger.LoggerWithDevelopment(dev)
}

func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internallogger.LoggerWithFields(fields)
}

func LoggerWithSchema(schema string) LoggerOption {
	return internallogger.LoggerWithSchema(schema)
}

func LoggerWithCallerSkip(skip int) LoggerOption {
	return internallogger.LoggerWithCallerSkip(skip)
}

func LoggerWithoutCaller() LoggerOption {
	return internallogger.LoggerWithoutCaller()
}

// LoggerWithHomeRedaction logs paths under home as "~/...".
func LoggerWithHomeRedaction(home string) LoggerOption {
	return internallogger.LoggerWithHomeRedaction(home)
}

// FileSinkConfig appends JSON lines to path at the logger's level.
func FileSinkConfig(path string) SinkConfig {
	return SinkConfig{Type: string(FileSink), Config: map[string]interface{}{"path": path}}
}

// FileSinkConfigAtLevel appends JSON lines to path at a fixed level.
func FileSinkConfigAtLevel(path, level string) SinkConfig {
	cfg := FileSinkConfig(path)
	cfg.Config["level"] = level
	return cfg
}

// NewHostLogger builds the host process logger from cfg: level, app id field,
// home redaction and the optional file sink.
func NewHostLogger(cfg HostConfig) (types.Logger, error) {
	opts := []LoggerOption{
		LoggerWithLevel(cfg.LogLevel),
		LoggerWithFields(map[string]interface{}{"app_id": cfg.AppID}),
	}
	if cfg.RedactHome {
		if home, err := os.UserHomeDir(); err == nil {
			opts = append(opts, LoggerWithHomeRedaction(home))
		}
	}

	logger := NewLogger(opts...)
	if cfg.LogFile != "" {
		if err := logger.AddSink("file", FileSinkConfig(cfg.LogFile)); err != nil {
			return nil, err
		}
	}
	return logger, nil
}
