package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Compression methods accepted by Compress.
const (
	CompressNone = ""
	CompressZstd = "zstd"
)

// Compress wraps w so that everything written is compressed with method.
// Closing the returned writer flushes the compressor but leaves w open.
func Compress(w io.Writer, method string) (io.WriteCloser, error) {
	switch strings.ToLower(method) {
	case CompressNone, "none":
		return nopCloser{w}, nil
	case CompressZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, fmt.Errorf("zstd.NewWriter: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("unknown compression %q", method)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
