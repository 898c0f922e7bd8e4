package internallogger

import (
	"errors"
	"syscall"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"go.uber.org/zap"
)

// Log writes one entry. keysAndValues are read in pairs; pairs whose key is not a
// non-empty string are dropped, as is a trailing key without a value.
func (z *ZapLoggerAdapter) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	logger := z.current()
	if logger == nil {
		return
	}
	ce := logger.Check(levelToZap(level), msg)
	if ce == nil {
		return
	}
	ce.Write(z.fieldsFromPairs(keysAndValues)...)
}

func (z *ZapLoggerAdapter) fieldsFromPairs(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			continue
		}
		fields = append(fields, z.field(key, kv[i+1]))
	}
	return fields
}

func (z *ZapLoggerAdapter) field(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentFields(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, componentFields(*v))
	case string:
		return zap.String(key, z.redactor.path(v))
	case []string:
		return zap.Strings(key, z.redactor.paths(v))
	case error:
		if z.redactor == nil {
			return zap.NamedError(key, v)
		}
		return zap.String(key, z.redactor.text(v.Error()))
	default:
		return zap.Any(key, v)
	}
}

func componentFields(meta types.ComponentMetadata) map[string]string {
	return map[string]string{
		"id":   meta.ID,
		"type": meta.Type,
		"name": meta.Name,
	}
}

func (z *ZapLoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.Log(types.DebugLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.Log(types.InfoLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.Log(types.WarnLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.Log(types.ErrorLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) DPanic(msg string, keysAndValues ...interface{}) {
	z.Log(types.DPanicLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Panic(msg string, keysAndValues ...interface{}) {
	z.Log(types.PanicLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Fatal(msg string, keysAndValues ...interface{}) {
	z.Log(types.FatalLevel, msg, keysAndValues...)
}

// GetLevel returns the shared minimum level.
func (z *ZapLoggerAdapter) GetLevel() types.LogLevel {
	return levelFromZap(z.level.Level())
}

// SetLevel changes the minimum level of stdout and of every sink without its own level.
func (z *ZapLoggerAdapter) SetLevel(level types.LogLevel) {
	z.level.SetLevel(levelToZap(level))
}

// Flush syncs all outputs. Terminals and pipes that cannot be synced are not errors.
func (z *ZapLoggerAdapter) Flush() error {
	logger := z.current()
	if logger == nil {
		return nil
	}
	err := logger.Sync()
	if err == nil || unsyncable(err) {
		return nil
	}
	return err
}

func unsyncable(err error) bool {
	return errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF)
}
