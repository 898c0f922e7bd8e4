package internallogger

import (
	"os"
	"sort"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"github.com/joeydtaylor/quill/pkg/logschema"
	"go.uber.org/zap"
)

// LoggerOption adjusts logger settings before the logger is built.
type LoggerOption func(*settings)

type settings struct {
	level         types.LogLevel
	development   bool
	disableCaller bool
	callerSkip    int
	schema        string
	fields        map[string]interface{}
	redactHome    string
}

func defaultSettings() settings {
	return settings{
		level:      types.InfoLevel,
		callerSkip: 4,
		schema:     logschema.SchemaID,
		fields: map[string]interface{}{
			logschema.FieldPID: os.Getpid(),
		},
	}
}

// baseFields returns the fields stamped on every line, schema first.
func (s settings) baseFields() []zap.Field {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		if k != "" && k != logschema.FieldSchema {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys)+1)
	out = append(out, zap.String(logschema.FieldSchema, s.schema))
	for _, k := range keys {
		out = append(out, zap.Any(k, s.fields[k]))
	}
	return out
}

// LoggerWithLevel sets the minimum level by name ("debug", "info", ...). Unknown
// names leave the level at info.
func LoggerWithLevel(name string) LoggerOption {
	return func(s *settings) {
		s.level = ParseLevel(name)
	}
}

// LoggerWithDevelopment switches to capitalized level names.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *settings) {
		s.development = dev
	}
}

// LoggerWithFields stamps fields on every line. Empty keys are ignored.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *settings) {
		for k, v := range fields {
			if k == "" {
				continue
			}
			s.fields[k] = v
		}
	}
}

// LoggerWithSchema overrides the log_schema field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *settings) {
		if schema != "" {
			s.schema = schema
		}
	}
}

// LoggerWithCallerSkip adds frames to skip when annotating the caller.
func LoggerWithCallerSkip(skip int) LoggerOption {
	return func(s *settings) {
		s.callerSkip += skip
	}
}

// LoggerWithoutCaller drops the caller annotation.
func LoggerWithoutCaller() LoggerOption {
	return func(s *settings) {
		s.disableCaller = true
	}
}

// LoggerWithHomeRedaction rewrites path-valued fields under home to start with "~",
// so shared logs do not carry the user's account name.
func LoggerWithHomeRedaction(home string) LoggerOption {
	return func(s *settings) {
		s.redactHome = home
	}
}
