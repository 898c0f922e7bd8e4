package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/instance"
	"github.com/joeydtaylor/quill/pkg/internal/types"
)

type Instance = instance.Instance

type InstanceRecord = instance.Record

// AcquireInstance claims the single-instance lock in dir.
func AcquireInstance(ctx context.Context, dir string, options ...types.Option[*instance.Instance]) (*instance.Instance, error) {
	return instance.Acquire(ctx, dir, options...)
}

// InstanceWithLogger attaches loggers to the instance.
func InstanceWithLogger(loggers ...types.Logger) types.Option[*instance.Instance] {
	return instance.WithLogger(loggers...)
}

// InstanceWithHandshakeTimeout bounds one hand-off exchange.
func InstanceWithHandshakeTimeout(d time.Duration) types.Option[*instance.Instance] {
	return instance.WithHandshakeTimeout(d)
}
