package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func startBridge(t *testing.T) *Server {
	t.Helper()
	s, _ := newTestBridge(t, WithAddress("127.0.0.1:0"))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})

	select {
	case <-s.Ready():
	case err := <-errCh:
		t.Fatalf("serve failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server never became ready")
	}
	return s
}

func invokeGRPC(t *testing.T, addr, token string, req *structpb.Struct) (*structpb.Value, error) {
	t.Helper()
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, TokenMetadataKey, token)
	}

	out := &structpb.Value{}
	err = conn.Invoke(ctx, GRPCInvokeMethod, req, out)
	return out, err
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("struct: %v", err)
	}
	return s
}

func TestGRPC_Invoke(t *testing.T) {
	s := startBridge(t)

	req := mustStruct(t, map[string]interface{}{
		"command": "echo",
		"args":    map[string]interface{}{"a": 1.0},
	})
	out, err := invokeGRPC(t, s.Addr(), testToken, req)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := out.GetStructValue().GetFields()["a"].GetNumberValue(); got != 1 {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestGRPC_Errors(t *testing.T) {
	s := startBridge(t)

	tests := []struct {
		name  string
		token string
		cmd   string
		want  codes.Code
	}{
		{"missing token", "", "echo", codes.Unauthenticated},
		{"unknown command", testToken, "nope", codes.NotFound},
		{"empty command", testToken, "", codes.InvalidArgument},
		{"io not found", testToken, "missing", codes.NotFound},
		{"print", testToken, "print", codes.FailedPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invokeGRPC(t, s.Addr(), tt.token, mustStruct(t, map[string]interface{}{"command": tt.cmd}))
			if got := status.Code(err); got != tt.want {
				t.Fatalf("expected %v, got %v (%v)", tt.want, got, err)
			}
		})
	}
}

func TestGRPCWeb_Invoke(t *testing.T) {
	s := startBridge(t)

	req := mustStruct(t, map[string]interface{}{"command": "echo", "args": map[string]interface{}{"b": "x"}})
	msg, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	frame := make([]byte, 5+len(msg))
	binary.BigEndian.PutUint32(frame[1:5], uint32(len(msg)))
	copy(frame[5:], msg)

	httpReq, _ := http.NewRequest(http.MethodPost, "http://"+s.Addr()+GRPCInvokeMethod, bytes.NewReader(frame))
	httpReq.Header.Set("Content-Type", "application/grpc-web+proto")
	httpReq.Header.Set("X-Grpc-Web", "1")
	httpReq.Header.Set(TokenHeader, testToken)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(body) < 5 || body[0] != 0 {
		t.Fatalf("expected a data frame, got %x", body)
	}
	n := binary.BigEndian.Uint32(body[1:5])
	out := &structpb.Value{}
	if err := proto.Unmarshal(body[5:5+n], out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := out.GetStructValue().GetFields()["b"].GetStringValue(); got != "x" {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestGRPCStatus_Mapping(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{&types.BridgeError{StatusCode: http.StatusBadRequest}, codes.InvalidArgument},
		{&types.BridgeError{StatusCode: http.StatusUnauthorized}, codes.Unauthenticated},
		{&types.PrintError{Code: 5}, codes.FailedPrecondition},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("other"), codes.Internal},
	}
	for _, tt := range tests {
		if got := status.Code(grpcStatus(tt.err)); got != tt.want {
			t.Fatalf("grpcStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
