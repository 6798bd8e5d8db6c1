package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names a payload codec.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ParseCompression returns the Compression for a name.  The empty string means CompressionNone.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(name)); c {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip, CompressionZstd:
		return c, nil
	default:
		return "", fmt.Errorf("unknown compression %q", name)
	}
}

// CompressionForName infers the codec of an object from its extension (.gz, .zst).
func CompressionForName(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// SniffCompression inspects the magic bytes of data.
func SniffCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Compress encodes data with c.
func Compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch c {
	case "", CompressionNone:
		return data, nil
	case CompressionGzip:
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, WrapEncodeError(err)
		}
		if err := zw.Close(); err != nil {
			return nil, WrapEncodeError(err)
		}
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, WrapEncodeError(err)
		}
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return nil, WrapEncodeError(err)
		}
		if err := zw.Close(); err != nil {
			return nil, WrapEncodeError(err)
		}
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
	return buf.Bytes(), nil
}

// Decompress decodes data with c.
func Decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case "", CompressionNone:
		return data, nil
	case CompressionGzip, CompressionZstd:
		rc, err := NewDecompressReader(c, io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, err
		}
		return ReadAllAndClose(rc)
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

// NewDecompressReader wraps r so reads return decoded bytes.  Closing the result closes r.
func NewDecompressReader(c Compression, r io.ReadCloser) (io.ReadCloser, error) {
	switch c {
	case "", CompressionNone:
		return r, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, WrapDecodeError(err)
		}
		return &decompressReader{Reader: gr, close: gr.Close, src: r}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, WrapDecodeError(err)
		}
		return &decompressReader{Reader: zr, close: func() error { zr.Close(); return nil }, src: r}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

type decompressReader struct {
	io.Reader
	close func() error
	src   io.Closer
}

// Close closes both the decoder and the underlying reader.
func (d *decompressReader) Close() error {
	err := d.close()
	if cerr := d.src.Close(); err == nil {
		err = cerr
	}
	return err
}
