// Package codec turns file bytes into editor text and back.
//
// Reading sniffs the encoding in a fixed order: a UTF-8 BOM, a UTF-16LE BOM, a
// UTF-16BE BOM, strict UTF-8, and finally Windows-1252. The last step maps every
// byte, so decoding never fails. Writing always produces BOM-less UTF-8.
package codec

import (
	"io"
)

// Decoder reads a whole value of type T from a reader.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder writes a value of type T to a writer.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}
