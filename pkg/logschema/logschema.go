package logschema

// Log schema constants for quill structured logs.
const (
	SchemaID    = "quill.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	// FieldPID is attached to every entry as a base field.
	FieldPID = "pid"
)
