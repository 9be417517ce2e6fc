package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container a dataset payload is wrapped in.
type Compression uint8

const (
	// CompressionNone is plain text.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream.
	CompressionGzip
	// CompressionZstd is a zstd frame.
	CompressionZstd
	// CompressionLZ4 is an lz4 frame.
	CompressionLZ4
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// Extension returns the conventional file name suffix, e.g. ".zst".
func (c Compression) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses the String form of a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Detect reports the compression of a payload from its leading bytes.
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, magicZstd):
		return CompressionZstd
	case bytes.HasPrefix(header, magicLZ4):
		return CompressionLZ4
	case bytes.HasPrefix(header, magicGzip):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress sniffs the compression of r and returns a reader over the plain
// text. The returned closer releases decoder resources and must be called.
func Decompress(r io.Reader) (io.Reader, func(), Compression, error) {
	br := bufio.NewReader(r)
	// Peek returns fewer bytes with an error for short inputs; Detect only
	// needs what is there.
	header, _ := br.Peek(len(magicZstd))

	c := Detect(header)
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, c, err
		}
		return dec, dec.Close, c, nil
	case CompressionLZ4:
		return lz4.NewReader(br), func() {}, c, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, c, err
		}
		return zr, func() { _ = zr.Close() }, c, nil
	default:
		return br, func() {}, c, nil
	}
}

var zstdEncoderPool sync.Pool

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

// compress wraps plain text in the given container.
func compress(plain []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return plain, nil
	case CompressionZstd:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		return enc.EncodeAll(plain, nil), nil
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(plain); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(plain); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}
}
