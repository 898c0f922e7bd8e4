package codec

import (
	"bytes"
	"unicode/utf8"
)

// Encoding is the byte encoding chosen for one decode call.
type Encoding int

const (
	UTF8BOM Encoding = iota
	UTF16LE
	UTF16BE
	UTF8
	Windows1252
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "UTF-8-BOM"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case UTF8:
		return "UTF-8"
	case Windows1252:
		return "windows-1252"
	default:
		return "unknown"
	}
}

// BOMLen is the number of leading bytes the encoding's byte-order mark occupies.
func (e Encoding) BOMLen() int {
	switch e {
	case UTF8BOM:
		return len(bomUTF8)
	case UTF16LE, UTF16BE:
		return 2
	default:
		return 0
	}
}

// Sniff picks the encoding of raw. The checks run in order and the first match wins;
// a byte-order mark always beats content.
func Sniff(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(raw, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(raw, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(raw):
		return UTF8
	default:
		return Windows1252
	}
}
