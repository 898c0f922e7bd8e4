package instance

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/joeydtaylor/quill/pkg/internal/types"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Forward hands argv to the primary instance and waits for its acknowledgement.
func (i *Instance) Forward(ctx context.Context, argv []string) error {
	if i.primary {
		return ErrPrimary
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	ctx, cancel := context.WithTimeout(ctx, i.handshakeTimeout)
	defer cancel()

	header := http.Header{}
	header.Set(TokenHeader, i.record.Token)
	conn, resp, err := websocket.Dial(ctx, "ws://"+i.record.Address+Endpoint, &websocket.DialOptions{HTTPHeader: header})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		i.NotifyLoggers(types.ErrorLevel, "Forward: dial error", "component", i.componentMetadata, "event", "Forward", "error", err)
		return err
	}
	defer conn.Close(websocket.StatusInternalError, "forward failed")

	if argv == nil {
		argv = []string{}
	}
	if err := wsjson.Write(ctx, conn, LaunchMessage{Args: argv, Cwd: cwd}); err != nil {
		return err
	}

	var ack launchAck
	if err := wsjson.Read(ctx, conn, &ack); err != nil {
		return err
	}
	if !ack.OK {
		return errors.New("instance: primary rejected launch")
	}

	conn.Close(websocket.StatusNormalClosure, "")
	i.NotifyLoggers(types.InfoLevel, "Forward: launch delivered", "component", i.componentMetadata, "event", "Forward", "result", "SUCCESS", "pid", i.record.PID)
	return nil
}
