package codec

import (
	"os"

	"github.com/joeydtaylor/quill/pkg/internal/types"
)

// ReadFile reads path and decodes it. Failures to read are *types.IOError; decoding
// itself cannot fail.
func ReadFile(path string) (string, Encoding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", UTF8, types.NewIOError("read", path, err)
	}
	text, enc := DecodeWithEncoding(raw)
	return text, enc, nil
}

// WriteFile creates or truncates path with text as UTF-8. Writes are not atomic.
func WriteFile(path, text string) error {
	return types.NewIOError("write", path, os.WriteFile(path, []byte(text), 0o644))
}
