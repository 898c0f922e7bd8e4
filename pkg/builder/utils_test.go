package builder

import (
	"reflect"
	"strings"
	"testing"
)

func TestMapFilter(t *testing.T) {
	in := []string{"a.txt", "", "b.txt"}
	got := Map(Filter(in, func(s string) bool { return s != "" }), strings.ToUpper)
	want := []string{"A.TXT", "B.TXT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(`{"path":"note.txt"}`, 50))
	for _, alg := range []CompressionAlgorithm{CompressBrotli, CompressZstd, CompressGzip, CompressSnappy, CompressLZ4} {
		enc, err := Compress(payload, alg)
		if err != nil {
			t.Fatalf("%s compress: %v", alg, err)
		}
		dec, err := Decompress(enc, alg)
		if err != nil {
			t.Fatalf("%s decompress: %v", alg, err)
		}
		if string(dec) != string(payload) {
			t.Fatalf("%s: round trip mismatch", alg)
		}
	}
}

func TestDecodeText(t *testing.T) {
	text, enc := DecodeTextWithEncoding([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
	if text != "hi" || enc != EncodingUTF8BOM {
		t.Fatalf("got %q %v", text, enc)
	}
	if got := DecodeText([]byte{0xE9}); got != "é" {
		t.Fatalf("expected Windows-1252 fallback, got %q", got)
	}
}
