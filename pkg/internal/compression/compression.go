// Package compression negotiates and applies HTTP content codings for bridge bodies.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Algorithm is a content-coding token as it appears in Accept-Encoding and
// Content-Encoding headers.
type Algorithm string

const (
	Identity Algorithm = "identity"
	Brotli   Algorithm = "br"
	Zstd     Algorithm = "zstd"
	Gzip     Algorithm = "gzip"
	Snappy   Algorithm = "x-snappy-framed"
	LZ4      Algorithm = "x-lz4"
)

// ErrTooLarge is returned by DecompressLimit when the decoded body exceeds the limit.
var ErrTooLarge = errors.New("compression: decoded body exceeds limit")

// preference orders algorithms when a client weighs several equally.
var preference = []Algorithm{Brotli, Zstd, Gzip, Snappy, LZ4}

// Parse maps a header token to a supported algorithm.
func Parse(token string) (Algorithm, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" || token == string(Identity) {
		return Identity, true
	}
	for _, alg := range preference {
		if token == string(alg) {
			return alg, true
		}
	}
	return Identity, false
}

// Negotiate picks the best supported coding from an Accept-Encoding header value.
// It falls back to Identity when nothing acceptable is offered.
func Negotiate(acceptEncoding string) Algorithm {
	weights := make(map[Algorithm]float64)
	wildcard := -1.0

	for _, part := range strings.Split(acceptEncoding, ",") {
		token, q := parseWeighted(part)
		if token == "" {
			continue
		}
		if token == "*" {
			wildcard = q
			continue
		}
		if alg, ok := Parse(token); ok && alg != Identity {
			weights[alg] = q
		}
	}

	best, bestQ := Identity, 0.0
	for _, alg := range preference {
		q, ok := weights[alg]
		if !ok {
			q = wildcard
		}
		if q > bestQ {
			best, bestQ = alg, q
		}
	}
	return best
}

func parseWeighted(part string) (string, float64) {
	fields := strings.Split(part, ";")
	token := strings.ToLower(strings.TrimSpace(fields[0]))
	q := 1.0
	for _, param := range fields[1:] {
		param = strings.TrimSpace(param)
		if !strings.HasPrefix(param, "q=") {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimPrefix(param, "q="), 64)
		if err != nil {
			return token, 0
		}
		q = v
	}
	return token, q
}

// Compress encodes data with alg. Identity returns data unchanged.
func Compress(data []byte, alg Algorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch alg {
	case Identity, "":
		return data, nil
	case Gzip:
		w = gzip.NewWriter(&b)
	case Snappy:
		w = snappy.NewBufferedWriter(&b)
	case Zstd:
		zw, err := zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
		w = zw
	case Brotli:
		w = brotli.NewWriterLevel(&b, brotli.DefaultCompression)
	case LZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("unsupported content coding: %q", alg)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, alg Algorithm) ([]byte, error) {
	return DecompressLimit(data, alg, 0)
}

// DecompressLimit reverses Compress, failing with ErrTooLarge as soon as the
// decoded output passes limit bytes. A limit of zero or less means no limit.
func DecompressLimit(data []byte, alg Algorithm, limit int64) ([]byte, error) {
	var r io.Reader

	switch alg {
	case Identity, "":
		if limit > 0 && int64(len(data)) > limit {
			return nil, ErrTooLarge
		}
		return data, nil
	case Gzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case Snappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case Zstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case Brotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case LZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported content coding: %q", alg)
	}

	if limit <= 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}
