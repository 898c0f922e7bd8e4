package builder

import (
	"github.com/joeydtaylor/quill/pkg/internal/compression"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

// Map returns f applied to every element of elems.
func Map[T, U any](elems []T, f func(T) U) []U {
	return utils.Map(elems, f)
}

// Filter returns the elements of elems for which keep is true.
func Filter[T any](elems []T, keep func(T) bool) []T {
	return utils.Filter(elems, keep)
}

// NewToken returns a fresh random token for the bridge.
func NewToken() string {
	return utils.NewToken()
}

type CompressionAlgorithm = compression.Algorithm

// Content codings the bridge negotiates.
const (
	CompressIdentity = compression.Identity
	CompressBrotli   = compression.Brotli
	CompressZstd     = compression.Zstd
	CompressGzip     = compression.Gzip
	CompressSnappy   = compression.Snappy
	CompressLZ4      = compression.LZ4
)

// Compress encodes data with alg, e.g. for a compressed request body.
func Compress(data []byte, alg CompressionAlgorithm) ([]byte, error) {
	return compression.Compress(data, alg)
}

// Decompress reverses Compress, e.g. for a compressed bridge response.
func Decompress(data []byte, alg CompressionAlgorithm) ([]byte, error) {
	return compression.Decompress(data, alg)
}
