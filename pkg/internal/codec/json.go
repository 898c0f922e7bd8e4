package codec

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrTrailingData is returned when a JSON body holds more than one value.
var ErrTrailingData = errors.New("codec: trailing data after JSON value")

// JSONDecoder decodes exactly one JSON value into a T.
type JSONDecoder[T any] struct {
	strict bool
}

func NewJSONDecoder[T any]() *JSONDecoder[T] {
	return &JSONDecoder[T]{}
}

// NewStrictJSONDecoder returns a decoder that also rejects unknown object fields.
func NewStrictJSONDecoder[T any]() *JSONDecoder[T] {
	return &JSONDecoder[T]{strict: true}
}

// Decode reads one value from r. An empty reader yields the zero value.
func (d *JSONDecoder[T]) Decode(r io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	if d.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, nil
		}
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, ErrTrailingData
	}
	return v, nil
}
