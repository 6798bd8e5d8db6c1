package azfile

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/frame"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/read"
	"github.com/c2fo/azfs/pattern"
)

// Format selects the codec of a batched Read.
type Format string

// Formats understood by Read.
const (
	FormatCSV    Format = "csv"
	FormatTable  Format = "table"
	FormatPickle Format = "pickle"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatTable, FormatPickle:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: %w", s, azfs.ErrInvalidArgument)
}

// Read loads several files as one frame, their rows concatenated in input order.  paths is either a list of file
// URLs, a single wildcard URL or a single directory URL (trailing slash), whose files are read in lexical order.
// With read.WithConcurrency(n) up to n files are fetched at once; output order does not depend on completion order.
// The first failure cancels the batch and is returned.  An expansion that matches nothing yields an empty frame.
func (c *Client) Read(ctx context.Context, paths []string, format Format, opts ...options.ReadOption) (*frame.Frame, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	urls, err := c.expand(ctx, paths)
	if err != nil {
		return nil, err
	}

	settings := read.Resolve(append([]options.ReadOption{read.WithConcurrency(c.concurrency)}, opts...))
	frames := make([]*frame.Frame, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Concurrency)
	for i, u := range urls {
		g.Go(func() error {
			c.logger.Debug("batch read", slog.Int("index", i), slog.String("path", u))
			f, err := c.readFrame(gctx, u, format, settings)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frame.Concat(frames...), nil
}

func (c *Client) readFrame(ctx context.Context, path string, format Format, settings read.Settings) (*frame.Frame, error) {
	switch format {
	case FormatTable:
		return c.ReadTable(ctx, path)
	case FormatPickle:
		return c.ReadPickle(ctx, path, read.WithCompression(settings.Compression))
	default:
		return c.ReadCSV(ctx, path)
	}
}

// expand turns the Read arguments into the list of file URLs to load.
func (c *Client) expand(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) != 1 {
		return paths, nil
	}

	p, err := azpath.Decode(paths[0])
	if err != nil {
		return nil, err
	}
	switch {
	case p.Kind.IsFileKind() && p.HasWildcard():
		_, b, err := c.resolve("read", paths[0])
		if err != nil {
			return nil, err
		}
		matches, err := c.match(ctx, p, b)
		if err != nil {
			return nil, err
		}
		return urlsOf(p, matches), nil
	case p.Kind.IsFileKind() && p.IsDir:
		_, b, err := c.resolve("read", paths[0])
		if err != nil {
			return nil, err
		}
		entries, err := b.List(ctx, p.Container, p.Prefix(), false)
		if err != nil {
			return nil, err
		}
		files := entries[:0:0]
		for _, e := range entries {
			if !e.IsDirectory {
				files = append(files, e)
			}
		}
		return urlsOf(p, pattern.SortUnique(files)), nil
	}
	return paths, nil
}

func urlsOf(p *azpath.StoragePath, entries []azfs.ListingEntry) []string {
	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = absolute(p, e)
	}
	return urls
}
