package builder

import (
	"github.com/joeydtaylor/quill/pkg/internal/codec"
)

type Encoding = codec.Encoding

// Detected encodings, in sniffing order.
const (
	EncodingUTF8BOM     = codec.UTF8BOM
	EncodingUTF16LE     = codec.UTF16LE
	EncodingUTF16BE     = codec.UTF16BE
	EncodingUTF8        = codec.UTF8
	EncodingWindows1252 = codec.Windows1252
)

// DecodeText decodes raw file bytes by BOM and content sniffing. It never fails.
func DecodeText(raw []byte) string {
	return codec.Decode(raw)
}

// DecodeTextWithEncoding is DecodeText that also reports the detected encoding.
func DecodeTextWithEncoding(raw []byte) (string, Encoding) {
	return codec.DecodeWithEncoding(raw)
}

// NewTextDecoder returns a streaming decoder applying the same sniffing.
func NewTextDecoder() *codec.TextDecoder {
	return codec.NewTextDecoder()
}

// NewTextEncoder returns an encoder writing text as UTF-8.
func NewTextEncoder() *codec.TextEncoder {
	return codec.NewTextEncoder()
}
