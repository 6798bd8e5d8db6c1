package azfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/list"
	"github.com/c2fo/azfs/pattern"
	"github.com/c2fo/azfs/utils"
)

// Ls lists the immediate children of path.  Sub-directories appear once, by name.  By default names are returned
// relative to path; with list.WithAttachPrefix they are absolute URLs.  A wildcard path is expanded like Glob.
// For a queue URL Ls returns the text of the visible messages without dequeuing them.
func (c *Client) Ls(ctx context.Context, path string, opts ...options.ListOption) ([]string, error) {
	p, b, err := c.resolve("ls", path)
	if err != nil {
		return nil, err
	}

	if p.Kind == azfs.KindQueue {
		entries, err := b.List(ctx, p.Container, "", false)
		if err != nil {
			return nil, utils.WrapListError(err)
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		return names, nil
	}

	if p.HasWildcard() {
		return c.glob(ctx, p, b, list.HasAttachPrefix(opts))
	}

	entries, err := b.List(ctx, p.Container, p.Prefix(), false)
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	entries = pattern.SortUnique(entries)

	names := make([]string, len(entries))
	for i, e := range entries {
		if list.HasAttachPrefix(opts) {
			names[i] = absolute(p, e)
		} else {
			names[i] = e.Name
		}
	}
	return names, nil
}

// Glob returns the objects matching the wildcard path, sorted and free of duplicates.  '*' never crosses a '/'.
// Paths are relative to the container unless list.WithAttachPrefix is given.  A pattern ending in '/' matches
// directories.  A path without wildcards matches itself when it exists.
func (c *Client) Glob(ctx context.Context, path string, opts ...options.ListOption) ([]string, error) {
	p, b, err := c.resolve("glob", path)
	if err != nil {
		return nil, err
	}
	if !p.Kind.IsFileKind() {
		return nil, azfs.NewPathError("glob", path, azfs.ErrUnsupportedOperation, fmt.Errorf("%s has no paths", p.Kind))
	}
	return c.glob(ctx, p, b, list.HasAttachPrefix(opts))
}

func (c *Client) glob(ctx context.Context, p *azpath.StoragePath, b azfs.Backend, attach bool) ([]string, error) {
	matches, err := c.match(ctx, p, b)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		if attach {
			out[i] = absolute(p, m)
		} else {
			out[i] = m.FullPath
		}
	}
	return out, nil
}

// match expands the blob path of p against one level listings of its container.
func (c *Client) match(ctx context.Context, p *azpath.StoragePath, b azfs.Backend) ([]azfs.ListingEntry, error) {
	expr := p.BlobPath
	if p.IsDir && expr != "" {
		expr += "/"
	}
	lister := func(ctx context.Context, prefix string) ([]azfs.ListingEntry, error) {
		entries, err := b.List(ctx, p.Container, prefix, false)
		if prefix != "" {
			entries, err = notFoundIsEmpty(entries, err)
		}
		return entries, err
	}
	matches, err := pattern.Match(ctx, expr, lister)
	if err != nil {
		return nil, utils.WrapGlobError(err)
	}
	return matches, nil
}

// absolute renders a listing entry as a URL in the protocol of p.  Directories lose their trailing slash.
func absolute(p *azpath.StoragePath, e azfs.ListingEntry) string {
	sub := p.WithBlobPath(strings.TrimSuffix(e.FullPath, "/"))
	sub.IsDir = false
	return sub.URL()
}
