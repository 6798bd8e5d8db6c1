package azfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/frame"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/read"
	"github.com/c2fo/azfs/options/write"
	"github.com/c2fo/azfs/utils"
)

// maxLineSize bounds a single line read by ReadLines.
const maxLineSize = 16 << 20

// ReadCSV reads a comma separated file whose first line is the header.  Paths ending in .gz or .zst are
// decompressed.
func (c *Client) ReadCSV(ctx context.Context, path string) (*frame.Frame, error) {
	return c.readDelimited(ctx, path, frame.CommaSeparator)
}

// ReadTable reads a tab separated file whose first line is the header.  Paths ending in .gz or .zst are
// decompressed.
func (c *Client) ReadTable(ctx context.Context, path string) (*frame.Frame, error) {
	return c.readDelimited(ctx, path, frame.TabSeparator)
}

func (c *Client) readDelimited(ctx context.Context, path string, sep rune) (*frame.Frame, error) {
	data, err := c.getText(ctx, path)
	if err != nil {
		return nil, err
	}
	return frame.ReadDelimited(bytes.NewReader(data), sep)
}

// WriteCSV writes f as comma separated text.  Paths ending in .gz or .zst are compressed.
func (c *Client) WriteCSV(ctx context.Context, path string, f *frame.Frame, opts ...options.WriteOption) error {
	return c.writeDelimited(ctx, path, f, frame.CommaSeparator, opts)
}

// WriteTable writes f as tab separated text.  Paths ending in .gz or .zst are compressed.
func (c *Client) WriteTable(ctx context.Context, path string, f *frame.Frame, opts ...options.WriteOption) error {
	return c.writeDelimited(ctx, path, f, frame.TabSeparator, opts)
}

func (c *Client) writeDelimited(ctx context.Context, path string, f *frame.Frame, sep rune, opts []options.WriteOption) error {
	var buf bytes.Buffer
	if err := frame.WriteDelimited(&buf, f, sep, write.Resolve(opts).Header); err != nil {
		return err
	}
	return c.putText(ctx, path, buf.Bytes())
}

// ReadJSON decodes the JSON document at path into v.
func (c *Client) ReadJSON(ctx context.Context, path string, v any) error {
	data, err := c.getText(ctx, path)
	if err != nil {
		return err
	}
	return utils.WrapDecodeError(json.Unmarshal(data, v))
}

// WriteJSON encodes v as JSON and writes it to path.
func (c *Client) WriteJSON(ctx context.Context, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return utils.WrapEncodeError(err)
	}
	return c.putText(ctx, path, data)
}

// ReadPickle reads a binary frame written by WritePickle.  The codec is sniffed unless read.WithCompression is
// given.
func (c *Client) ReadPickle(ctx context.Context, path string, opts ...options.ReadOption) (*frame.Frame, error) {
	data, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return frame.DecodePickle(data, read.Resolve(opts).Compression)
}

// WritePickle writes f as a binary frame, gzip compressed unless write.WithCompression says otherwise.
func (c *Client) WritePickle(ctx context.Context, path string, f *frame.Frame, opts ...options.WriteOption) error {
	data, err := frame.EncodePickle(f, write.Resolve(opts).Compression)
	if err != nil {
		return err
	}
	return c.Put(ctx, path, data)
}

// ReadLines streams path line by line, without line terminators, decompressing .gz and .zst paths.  An error
// returned by fn stops the iteration and is returned.
func (c *Client) ReadLines(ctx context.Context, path string, fn func(line string) error) error {
	r, err := c.open(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return utils.WrapReadError(scanner.Err())
}

// ReadCSVChunks streams a comma separated file and calls fn with frames of at most size rows, each carrying the
// header.
func (c *Client) ReadCSVChunks(ctx context.Context, path string, size int, fn func(*frame.Frame) error) error {
	r, err := c.open(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	return frame.ReadDelimitedChunks(r, frame.CommaSeparator, size, fn)
}

// open returns a streaming reader over path, decompressing by extension.
func (c *Client) open(ctx context.Context, path string) (io.ReadCloser, error) {
	p, b, err := c.resolve("read", path)
	if err != nil {
		return nil, err
	}
	if err := requireObject("read", path, p); err != nil {
		return nil, err
	}
	r, err := b.Read(ctx, p.Container, p.BlobPath)
	if err != nil {
		return nil, utils.WrapReadError(err)
	}
	dr, err := utils.NewDecompressReader(utils.CompressionForName(p.BlobPath), r)
	if err != nil {
		return nil, errors.Join(err, r.Close())
	}
	return dr, nil
}

// getText reads path and decompresses it by extension.
func (c *Client) getText(ctx context.Context, path string) ([]byte, error) {
	r, err := c.open(ctx, path)
	if err != nil {
		return nil, err
	}
	return utils.ReadAllAndClose(r)
}

// putText compresses data by the extension of path and writes it.
func (c *Client) putText(ctx context.Context, path string, data []byte) error {
	p, err := azpath.Decode(path)
	if err != nil {
		return err
	}
	data, err = utils.Compress(utils.CompressionForName(p.BlobPath), data)
	if err != nil {
		return err
	}
	return c.Put(ctx, path, data)
}
