package nbtfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the transport compression around an NBT stream.
type Compression uint8

const (
	// CompressionAuto detects the compression on read and uses gzip on
	// write, the conventional NBT file layout.
	CompressionAuto Compression = iota

	// CompressionNone is a plain NBT stream.
	CompressionNone

	// CompressionGzip is RFC 1952 gzip.
	CompressionGzip

	// CompressionZlib is RFC 1950 zlib, as used by region file chunks.
	CompressionZlib

	// CompressionZstd is a zstd frame.
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame.
	CompressionLZ4
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the human-readable name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression from its string representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "auto", "":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zlib":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// Detect identifies the compression from the first bytes of a stream.
// Four bytes are enough to tell all supported formats apart.
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, magicGzip):
		return CompressionGzip
	case bytes.HasPrefix(header, magicZstd):
		return CompressionZstd
	case bytes.HasPrefix(header, magicLZ4):
		return CompressionLZ4
	case len(header) >= 2 && header[0]&0x0f == 8 && header[0]>>4 <= 7 &&
		(uint16(header[0])<<8|uint16(header[1]))%31 == 0:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// NewReader returns a reader yielding the decompressed NBT stream of r,
// together with the compression that was applied. With CompressionAuto the
// compression is detected from the stream. Closing the returned reader
// releases the decompressor but does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, Compression, error) {
	if c == CompressionAuto {
		br := bufio.NewReader(r)
		// A short or failing stream falls through as uncompressed; the
		// codec then reports the real error.
		header, _ := br.Peek(4)
		c = Detect(header)
		r = br
	}

	switch c {
	case CompressionNone:
		return io.NopCloser(r), c, nil

	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("gzip reader: %w", err)
		}
		return zr, c, nil

	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("zlib reader: %w", err)
		}
		return zr, c, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("zstd reader: %w", err)
		}
		return zr.IOReadCloser(), c, nil

	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), c, nil

	default:
		return nil, c, fmt.Errorf("unsupported compression: %s", c)
	}
}

// NewWriter returns a writer that compresses into w. Close must be called
// to flush the compressed stream; it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionAuto, CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZlib:
		return zlib.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
