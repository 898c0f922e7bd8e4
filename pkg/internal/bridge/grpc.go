package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// GRPCServiceName is the fully qualified bridge service.
	GRPCServiceName = "quill.bridge.v1.Bridge"
	// GRPCInvokeMethod is the full method name of Invoke.
	GRPCInvokeMethod = "/" + GRPCServiceName + "/Invoke"
)

// invokeServer is the handler type of the bridge service. Requests are
// Struct{command: string, args: any}; the response is the command result as a Value.
type invokeServer interface {
	Invoke(ctx context.Context, req *structpb.Struct) (*structpb.Value, error)
}

var bridgeServiceDesc = grpc.ServiceDesc{
	ServiceName: GRPCServiceName,
	HandlerType: (*invokeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Invoke",
			Handler:    invokeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quill/bridge/v1/bridge.proto",
}

func invokeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(invokeServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GRPCInvokeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(invokeServer).Invoke(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type grpcService struct {
	s   *Server
	cfg serverConfig
}

func (s *Server) newGRPCServer(cfg serverConfig) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(s.unaryAuthInterceptor(cfg)))
	srv.RegisterService(&bridgeServiceDesc, &grpcService{s: s, cfg: cfg})
	return srv
}

// Invoke runs the named command and converts its JSON result to a Value.
func (g *grpcService) Invoke(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	name := req.GetFields()["command"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "command is required")
	}

	var args json.RawMessage
	if v, ok := req.GetFields()["args"]; ok && v != nil {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			data, err := v.MarshalJSON()
			if err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}
			args = data
		}
	}

	if g.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.timeout)
		defer cancel()
	}

	result, err := g.s.Invoke(ctx, name, args)
	if err != nil {
		return nil, grpcStatus(err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Value{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// grpcStatus maps a command error to a gRPC status carrying its message.
func grpcStatus(err error) error {
	code := codes.Internal
	var bridgeErr *types.BridgeError
	var printErr *types.PrintError
	switch {
	case errors.As(err, &bridgeErr):
		switch bridgeErr.StatusCode {
		case http.StatusNotFound:
			code = codes.NotFound
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			code = codes.InvalidArgument
		case http.StatusUnauthorized:
			code = codes.Unauthenticated
		}
	case errors.As(err, &printErr):
		code = codes.FailedPrecondition
	case errors.Is(err, fs.ErrNotExist):
		code = codes.NotFound
	case errors.Is(err, fs.ErrPermission):
		code = codes.PermissionDenied
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	return status.Error(code, err.Error())
}
