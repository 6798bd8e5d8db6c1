package azfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

// Get returns the raw content of path.  For a queue URL it receives one message, deleting it from the queue.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	p, b, err := c.resolve("get", path)
	if err != nil {
		return nil, err
	}
	if err := requireObject("get", path, p); err != nil {
		return nil, err
	}
	return c.get(ctx, p, b)
}

// Download is an alias of Get.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	return c.Get(ctx, path)
}

func (c *Client) get(ctx context.Context, p *azpath.StoragePath, b azfs.Backend) ([]byte, error) {
	r, err := b.Read(ctx, p.Container, p.BlobPath)
	if err != nil {
		return nil, utils.WrapGetError(err)
	}
	data, err := utils.ReadAllAndClose(r)
	if err != nil {
		return nil, utils.WrapGetError(err)
	}
	return data, nil
}

// Put writes data to path, replacing any existing object.  For a queue URL it enqueues data as one message.
func (c *Client) Put(ctx context.Context, path string, data []byte) error {
	p, b, err := c.resolve("put", path)
	if err != nil {
		return err
	}
	if err := requireObject("put", path, p); err != nil {
		return err
	}
	return c.put(ctx, p, b, data)
}

// Upload is an alias of Put.
func (c *Client) Upload(ctx context.Context, path string, data []byte) error {
	return c.Put(ctx, path, data)
}

func (c *Client) put(ctx context.Context, p *azpath.StoragePath, b azfs.Backend, data []byte) error {
	if err := b.Write(ctx, p.Container, p.BlobPath, data); err != nil {
		return utils.WrapPutError(err)
	}
	c.logger.Debug("put", slog.String("path", p.URL()), slog.Int("bytes", len(data)))
	return nil
}

// Info returns the metadata of path without downloading it.  A container root, a directory or a queue may be
// probed as well as a file.
func (c *Client) Info(ctx context.Context, path string) (*azfs.Info, error) {
	p, b, err := c.resolve("info", path)
	if err != nil {
		return nil, err
	}
	if p.HasWildcard() {
		return nil, azfs.NewPathError("info", path, azfs.ErrInvalidArgument, fmt.Errorf("wildcards are not allowed"))
	}
	info, err := b.Properties(ctx, p.Container, p.BlobPath)
	if err != nil {
		return nil, utils.WrapInfoError(err)
	}
	return info, nil
}

// Checksum returns the ETag of path.
func (c *Client) Checksum(ctx context.Context, path string) (string, error) {
	info, err := c.Info(ctx, path)
	if err != nil {
		return "", err
	}
	return info.ETag, nil
}

// Size returns the size of path in bytes.  For a queue it is the approximate message count.
func (c *Client) Size(ctx context.Context, path string) (int64, error) {
	info, err := c.Info(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// IsDir reports whether path is a directory.  A missing path is not a directory.
func (c *Client) IsDir(ctx context.Context, path string) (bool, error) {
	return c.isType(ctx, path, azfs.InfoTypeDirectory)
}

// IsFile reports whether path is a file.  A missing path is not a file.
func (c *Client) IsFile(ctx context.Context, path string) (bool, error) {
	return c.isType(ctx, path, azfs.InfoTypeFile)
}

func (c *Client) isType(ctx context.Context, path, typ string) (bool, error) {
	info, err := c.Info(ctx, path)
	switch {
	case azfs.IsNotFound(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return info.Type == typ, nil
}

// Exists reports whether path names an existing object, directory, container or queue.  Only metadata is fetched.
// A wildcard path exists when it matches at least one object.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	p, b, err := c.resolve("exists", path)
	if err != nil {
		return false, err
	}

	var found bool
	switch {
	case p.HasWildcard():
		var matches []azfs.ListingEntry
		matches, err = c.match(ctx, p, b)
		found = len(matches) > 0
	case p.Kind.IsFileKind() && p.IsDir:
		found, err = c.dirExists(ctx, p, b)
	default:
		_, err = b.Properties(ctx, p.Container, p.BlobPath)
		found = err == nil
	}

	if azfs.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, utils.WrapExistsError(err)
	}
	return found, nil
}

// dirExists probes a directory with a one level listing.  An empty directory only exists where the backend keeps
// directory objects, ie: Data Lake.
func (c *Client) dirExists(ctx context.Context, p *azpath.StoragePath, b azfs.Backend) (bool, error) {
	entries, err := b.List(ctx, p.Container, p.Prefix(), false)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 || p.BlobPath == "" {
		return true, nil
	}
	info, err := b.Properties(ctx, p.Container, p.BlobPath)
	if err != nil {
		return false, err
	}
	return info.Type == azfs.InfoTypeDirectory, nil
}

// Rm deletes path and reports whether anything was removed.  A wildcard path deletes every match; a pattern that
// matches nothing returns false without issuing a delete.  A queue URL deletes the queue.  Blob directories are
// virtual, so removing one removes every blob below it; Data Lake directories are deleted recursively by the service.
func (c *Client) Rm(ctx context.Context, path string, opts ...options.DeleteOption) (bool, error) {
	p, b, err := c.resolve("rm", path)
	if err != nil {
		return false, err
	}

	if !p.HasWildcard() {
		switch {
		case p.Kind.IsFileKind() && p.BlobPath == "":
			return false, azfs.NewPathError("rm", path, azfs.ErrInvalidArgument, fmt.Errorf("refusing to delete a container"))
		case p.Kind == azfs.KindBlob && p.IsDir:
			names, err := c.deleteTargets(ctx, p, b, []azfs.ListingEntry{{FullPath: p.Prefix(), IsDirectory: true}})
			if err != nil {
				return false, err
			}
			if len(names) == 0 {
				return false, azfs.NewPathError("rm", path, azfs.ErrNotFound, nil)
			}
			return c.deleteAll(ctx, p, b, path, names, opts)
		}
		if err := b.Delete(ctx, p.Container, p.BlobPath, opts...); err != nil {
			return false, utils.WrapDeleteError(err)
		}
		c.logger.Debug("removed", slog.String("path", path))
		return true, nil
	}

	matches, err := c.match(ctx, p, b)
	if err != nil {
		return false, err
	}
	// expand everything before the first delete so a listing failure removes nothing
	names, err := c.deleteTargets(ctx, p, b, matches)
	if err != nil {
		return false, err
	}
	return c.deleteAll(ctx, p, b, path, names, opts)
}

// deleteTargets turns listing entries into object names to delete.  Directories stay as they are on Data Lake and
// expand to the blobs below them elsewhere.
func (c *Client) deleteTargets(ctx context.Context, p *azpath.StoragePath, b azfs.Backend, entries []azfs.ListingEntry) ([]string, error) {
	names := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, e := range entries {
		if !e.IsDirectory || p.Kind == azfs.KindDataLake {
			add(utils.RemoveTrailingSlash(e.FullPath))
			continue
		}
		below, err := notFoundIsEmpty(b.List(ctx, p.Container, utils.EnsureTrailingSlash(e.FullPath), true))
		if err != nil {
			return nil, utils.WrapListError(err)
		}
		for _, f := range below {
			if !f.IsDirectory {
				add(f.FullPath)
			}
		}
	}
	return names, nil
}

func (c *Client) deleteAll(ctx context.Context, p *azpath.StoragePath, b azfs.Backend, path string, names []string, opts []options.DeleteOption) (bool, error) {
	for _, name := range names {
		if err := b.Delete(ctx, p.Container, name, opts...); err != nil {
			return false, utils.WrapDeleteError(err)
		}
	}
	c.logger.Debug("removed matches", slog.String("pattern", path), slog.Int("count", len(names)))
	return len(names) > 0, nil
}

// Cp copies src to dst, possibly across storage kinds, by reading src fully into memory.  Unless overwrite is set an
// existing dst fails with azfs.ErrFileExists and is left untouched.  The existence check and the write are not
// atomic.
func (c *Client) Cp(ctx context.Context, src, dst string, overwrite bool) error {
	sp, sb, err := c.resolve("cp", src)
	if err != nil {
		return err
	}
	dp, db, err := c.resolve("cp", dst)
	if err != nil {
		return err
	}
	if src == dst || sp.SameObject(*dp) {
		return azfs.NewPathError("cp", dst, azfs.ErrInvalidArgument, fmt.Errorf("source and destination are the same"))
	}
	if err := requireObject("cp", src, sp); err != nil {
		return err
	}
	if err := requireObject("cp", dst, dp); err != nil {
		return err
	}

	if !overwrite {
		exists, err := c.Exists(ctx, dst)
		if err != nil {
			return utils.WrapCopyError(err)
		}
		if exists {
			return azfs.NewPathError("cp", dst, azfs.ErrFileExists, nil)
		}
	}

	data, err := c.get(ctx, sp, sb)
	if err != nil {
		return utils.WrapCopyError(err)
	}
	if err := c.put(ctx, dp, db, data); err != nil {
		return utils.WrapCopyError(err)
	}
	return nil
}

// notFoundIsEmpty turns a not-found listing into an empty one.
func notFoundIsEmpty(entries []azfs.ListingEntry, err error) ([]azfs.ListingEntry, error) {
	if errors.Is(err, azfs.ErrNotFound) {
		return nil, nil
	}
	return entries, err
}
