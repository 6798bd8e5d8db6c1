package datalake

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/datalakeerror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/filesystem"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/service"
	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

// Name is the human readable name of the backend
const Name = "Azure Data Lake Storage Gen2"

// metadata key Data Lake sets on directories
const folderMetadataKey = "hdi_isfolder"

// returned when a non-recursive delete targets a directory with children
const directoryNotEmpty = datalakeerror.StorageErrorCode("DirectoryNotEmpty")

// Client implements azfs.Backend on top of a Data Lake service client.  Directories are real objects.
type Client struct {
	client *service.Client
	logger *slog.Logger
}

// New builds a Client for cfg.  It is registered as the backend.Factory for azfs.KindDataLake.
func New(cfg backend.Config) (azfs.Backend, error) {
	var (
		c   *service.Client
		err error
	)
	serviceURL := cfg.URL() + "/"
	switch cfg.Credential.Mode() {
	case azfs.CredentialConnectionString:
		c, err = service.NewClientFromConnectionString(cfg.Credential.ConnectionString, nil)
	case azfs.CredentialSharedKey:
		var cred *azdatalake.SharedKeyCredential
		cred, err = azdatalake.NewSharedKeyCredential(cfg.Account, cfg.Credential.AccountKey)
		if err != nil {
			return nil, backend.AuthError(err)
		}
		c, err = service.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	default:
		tc, terr := backend.TokenCredential(cfg.Credential)
		if terr != nil {
			return nil, terr
		}
		c, err = service.NewClient(serviceURL, tc, nil)
	}
	if err != nil {
		return nil, backend.AuthError(err)
	}
	return NewWithClient(c, cfg.Logger), nil
}

// NewWithClient wraps an existing Data Lake service client.
func NewWithClient(c *service.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slogutil.Null()
	}
	return &Client{client: c, logger: logger}
}

func (c *Client) fileSystem(name string) *filesystem.Client {
	return c.client.NewFileSystemClient(name)
}

// List implements azfs.Backend.  A missing directory yields an empty listing.
func (c *Client) List(ctx context.Context, container, prefix string, recursive bool) ([]azfs.ListingEntry, error) {
	opts := &filesystem.ListPathsOptions{}
	if dir := strings.TrimSuffix(prefix, "/"); dir != "" {
		opts.Prefix = &dir
	}

	entries := make([]azfs.ListingEntry, 0)
	pager := c.fileSystem(container).NewListPathsPager(recursive, opts)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			if prefix != "" && datalakeerror.HasCode(err, datalakeerror.PathNotFound) {
				return entries, nil
			}
			return nil, mapError("list", container, prefix, err)
		}
		for _, p := range resp.Paths {
			if p == nil || p.Name == nil {
				continue
			}
			isDir := utils.Deref(p.IsDirectory)
			// recursive listings return files only, like a flat blob listing
			if isDir && recursive {
				continue
			}
			e := azfs.ListingEntry{
				Name:        utils.BaseName(*p.Name),
				FullPath:    *p.Name,
				IsDirectory: isDir,
			}
			// lastModified is an RFC1123 string in the path listing
			if p.LastModified != nil {
				if t, err := time.Parse(time.RFC1123, *p.LastModified); err == nil {
					e.LastModified = &t
				}
			}
			if isDir {
				e.FullPath = utils.EnsureTrailingSlash(e.FullPath)
			} else {
				e.Size = p.ContentLength
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Read implements azfs.Backend
func (c *Client) Read(ctx context.Context, container, name string) (io.ReadCloser, error) {
	resp, err := c.fileSystem(container).NewFileClient(name).DownloadStream(ctx, nil)
	if err != nil {
		return nil, mapError("read", container, name, err)
	}
	return resp.Body, nil
}

// Write implements azfs.Backend.  The file is created (replacing any existing one), the data appended in one call and
// then flushed.
func (c *Client) Write(ctx context.Context, container, name string, data []byte) error {
	fc := c.fileSystem(container).NewFileClient(name)
	if _, err := fc.Create(ctx, nil); err != nil {
		return mapError("write", container, name, err)
	}
	if len(data) > 0 {
		if _, err := fc.AppendData(ctx, 0, streaming.NopCloser(bytes.NewReader(data)), nil); err != nil {
			return mapError("write", container, name, err)
		}
	}
	if _, err := fc.FlushData(ctx, int64(len(data)), nil); err != nil {
		return mapError("write", container, name, err)
	}
	c.logger.Debug("file written", slog.String("filesystem", container), slog.String("name", name),
		slog.Int("bytes", len(data)))
	return nil
}

// Delete implements azfs.Backend.  Non-empty directories are removed recursively.
func (c *Client) Delete(ctx context.Context, container, name string, _ ...options.DeleteOption) error {
	fs := c.fileSystem(container)
	_, err := fs.NewFileClient(name).Delete(ctx, nil)
	if err != nil && datalakeerror.HasCode(err, directoryNotEmpty) {
		_, err = fs.NewDirectoryClient(name).Delete(ctx, nil)
	}
	if err != nil {
		return mapError("delete", container, name, err)
	}
	return nil
}

// Properties implements azfs.Backend
func (c *Client) Properties(ctx context.Context, container, name string) (*azfs.Info, error) {
	resp, err := c.fileSystem(container).NewFileClient(name).GetProperties(ctx, nil)
	if err != nil {
		return nil, mapError("properties", container, name, err)
	}

	info := &azfs.Info{
		Name:         utils.BaseName(name),
		Path:         name,
		Size:         utils.Deref(resp.ContentLength),
		CreationTime: resp.CreationTime,
		LastModified: resp.LastModified,
		ContentType:  utils.Deref(resp.ContentType),
		Type:         azfs.InfoTypeFile,
		Metadata:     make(map[string]string, len(resp.Metadata)),
	}
	if resp.ETag != nil {
		info.ETag = string(*resp.ETag)
	}
	for k, v := range resp.Metadata {
		if v != nil {
			info.Metadata[strings.ToLower(k)] = *v
		}
	}
	if strings.EqualFold(info.Metadata[folderMetadataKey], "true") {
		info.Type = azfs.InfoTypeDirectory
	}
	return info, nil
}

func mapError(op, container, name string, err error) error {
	p := container + "/" + name
	if datalakeerror.HasCode(err, datalakeerror.PathNotFound, datalakeerror.FileSystemNotFound) {
		return azfs.NewPathError(op, p, azfs.ErrNotFound, err)
	}
	return backend.MapError(op, p, err)
}

func init() {
	backend.Register(azfs.KindDataLake, New)
}

var _ azfs.Backend = (*Client)(nil)
