package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joeydtaylor/quill/pkg/internal/codec"
	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// Command names served over the bridge.
const (
	CmdGetOpenedFiles             = "getOpenedFiles"
	CmdReadTextFile               = "readTextFile"
	CmdWriteTextFile              = "writeTextFile"
	CmdRevealFile                 = "revealFile"
	CmdPrintFile                  = "printFile"
	CmdShowPrintDialog            = "showPrintDialog"
	CmdOpenSecondaryStorageFolder = "openSecondaryStorageFolder"
)

// aliases keeps the snake_case names older front ends invoke.
var aliases = map[string]string{
	"get_opened_file":          CmdGetOpenedFiles,
	"read_text_file":           CmdReadTextFile,
	"write_text_file":          CmdWriteTextFile,
	"reveal_file":              CmdRevealFile,
	"open_native_print_dialog": CmdPrintFile,
	"open_file_print_dialog":   CmdPrintFile,
	"show_print_dialog":        CmdShowPrintDialog,
	"open_skins_folder":        CmdOpenSecondaryStorageFolder,
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error { return requirePath(a.Path) }

type writeArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (a writeArgs) validate() error { return requirePath(a.Path) }

func requirePath(path string) error {
	if path == "" {
		return errors.New("path is required")
	}
	return nil
}

// Commands returns every bridge command, aliases included.
func (h *Host) Commands() map[string]types.CommandFunc {
	cmds := map[string]types.CommandFunc{
		CmdGetOpenedFiles: func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return h.GetOpenedFiles(ctx), nil
		},
		CmdReadTextFile: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			args, err := decodeArgs[pathArgs](raw)
			if err != nil {
				return nil, err
			}
			return h.ReadTextFile(ctx, args.Path)
		},
		CmdWriteTextFile: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			args, err := decodeArgs[writeArgs](raw)
			if err != nil {
				return nil, err
			}
			return nil, h.WriteTextFile(ctx, args.Path, args.Content)
		},
		CmdRevealFile: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			args, err := decodeArgs[pathArgs](raw)
			if err != nil {
				return nil, err
			}
			return nil, h.RevealFile(ctx, args.Path)
		},
		CmdPrintFile: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			args, err := decodeArgs[pathArgs](raw)
			if err != nil {
				return nil, err
			}
			return nil, h.PrintFile(ctx, args.Path)
		},
		CmdShowPrintDialog: func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return nil, h.ShowPrintDialog(ctx)
		},
		CmdOpenSecondaryStorageFolder: func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return nil, h.OpenSecondaryStorageFolder(ctx)
		},
	}
	for alias, target := range aliases {
		cmds[alias] = cmds[target]
	}
	return cmds
}

// Register adds every command to b.
func (h *Host) Register(b types.Bridge) {
	for name, fn := range h.Commands() {
		b.Register(name, fn)
	}
	h.NotifyLoggers(types.DebugLevel, "Register: commands registered", "component", h.componentMetadata, "event", "Register", "bridge", b.GetComponentMetadata())
}

func decodeArgs[T interface{ validate() error }](raw json.RawMessage) (T, error) {
	args, err := codec.NewJSONDecoder[T]().Decode(bytes.NewReader(raw))
	if err == nil {
		err = args.validate()
	}
	if err != nil {
		return args, &types.BridgeError{StatusCode: http.StatusBadRequest, Kind: types.ErrorKindArgs, Message: "invalid arguments: " + err.Error(), Err: err}
	}
	return args, nil
}
