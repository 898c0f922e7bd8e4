package codec

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// TextDecoder decodes file bytes of unknown encoding into a string.
type TextDecoder struct{}

// TextEncoder encodes a string as BOM-less UTF-8.
type TextEncoder struct{}

func NewTextDecoder() *TextDecoder {
	return &TextDecoder{}
}

func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

// Decode reads r to EOF and decodes the bytes. Only read errors are returned.
func (d *TextDecoder) Decode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Decode(raw), nil
}

// Encode writes text as UTF-8 without a byte-order mark.
func (e *TextEncoder) Encode(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// Decode returns raw as text. It is total: every input yields a string.
func Decode(raw []byte) string {
	text, _ := DecodeWithEncoding(raw)
	return text
}

// DecodeWithEncoding is Decode that also reports which encoding was used.
func DecodeWithEncoding(raw []byte) (string, Encoding) {
	enc := Sniff(raw)
	body := raw[enc.BOMLen():]

	switch enc {
	case UTF8:
		return string(body), enc
	case UTF8BOM:
		return transcode(unicode.UTF8, body), enc
	case UTF16LE:
		return transcode(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), body), enc
	case UTF16BE:
		return transcode(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), body), enc
	default:
		return transcode(charmap.Windows1252, body), Windows1252
	}
}

// transcode decodes with replacement characters for malformed input. The x/text
// decoders used here substitute U+FFFD instead of failing; the fallback below only
// guards the contract should that ever change.
func transcode(e encoding.Encoding, body []byte) string {
	out, err := e.NewDecoder().Bytes(body)
	if err != nil {
		out, _ = charmap.Windows1252.NewDecoder().Bytes(body)
	}
	return string(out)
}
