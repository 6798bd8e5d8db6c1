package blob

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	azblobblob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/delete"
	"github.com/c2fo/azfs/utils"
)

// Name is the human readable name of the backend
const Name = "Azure Blob Storage"

// Client implements azfs.Backend on top of an azblob.Client.
type Client struct {
	client *azblob.Client
	logger *slog.Logger
}

// New builds a Client for cfg.  It is registered as the backend.Factory for azfs.KindBlob.
func New(cfg backend.Config) (azfs.Backend, error) {
	var (
		c   *azblob.Client
		err error
	)
	serviceURL := cfg.URL() + "/"
	switch cfg.Credential.Mode() {
	case azfs.CredentialConnectionString:
		c, err = azblob.NewClientFromConnectionString(cfg.Credential.ConnectionString, nil)
	case azfs.CredentialSharedKey:
		var cred *azblob.SharedKeyCredential
		cred, err = azblob.NewSharedKeyCredential(cfg.Account, cfg.Credential.AccountKey)
		if err != nil {
			return nil, backend.AuthError(err)
		}
		c, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	default:
		tc, terr := backend.TokenCredential(cfg.Credential)
		if terr != nil {
			return nil, terr
		}
		c, err = azblob.NewClient(serviceURL, tc, nil)
	}
	if err != nil {
		return nil, backend.AuthError(err)
	}
	return NewWithClient(c, cfg.Logger), nil
}

// NewWithClient wraps an existing azblob.Client.
func NewWithClient(c *azblob.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slogutil.Null()
	}
	return &Client{client: c, logger: logger}
}

func (c *Client) containerClient(name string) *container.Client {
	return c.client.ServiceClient().NewContainerClient(name)
}

// List implements azfs.Backend.  Non-recursive listings use the "/" delimiter so sub-directories come back as blob
// prefixes.
func (c *Client) List(ctx context.Context, containerName, prefix string, recursive bool) ([]azfs.ListingEntry, error) {
	var listPrefix *string
	if prefix != "" {
		listPrefix = &prefix
	}
	entries := make([]azfs.ListingEntry, 0)

	if recursive {
		pager := c.client.NewListBlobsFlatPager(containerName, &azblob.ListBlobsFlatOptions{Prefix: listPrefix})
		for pager.More() {
			resp, err := pager.NextPage(ctx)
			if err != nil {
				return nil, mapError("list", containerName, prefix, err)
			}
			for _, item := range resp.Segment.BlobItems {
				if e, ok := itemEntry(item, prefix); ok {
					entries = append(entries, e)
				}
			}
		}
		return entries, nil
	}

	pager := c.containerClient(containerName).NewListBlobsHierarchyPager("/", &container.ListBlobsHierarchyOptions{
		Prefix: listPrefix,
	})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapError("list", containerName, prefix, err)
		}
		for _, p := range resp.Segment.BlobPrefixes {
			if p.Name == nil {
				continue
			}
			entries = append(entries, azfs.ListingEntry{
				Name:        utils.BaseName(*p.Name),
				FullPath:    utils.EnsureTrailingSlash(*p.Name),
				IsDirectory: true,
			})
		}
		for _, item := range resp.Segment.BlobItems {
			if e, ok := itemEntry(item, prefix); ok {
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

func itemEntry(item *container.BlobItem, prefix string) (azfs.ListingEntry, bool) {
	// skip the directory marker blob some tools create for the prefix itself
	if item == nil || item.Name == nil || *item.Name == prefix {
		return azfs.ListingEntry{}, false
	}
	e := azfs.ListingEntry{Name: utils.BaseName(*item.Name), FullPath: *item.Name}
	if item.Properties != nil {
		e.Size = item.Properties.ContentLength
		e.LastModified = item.Properties.LastModified
	}
	return e, true
}

// Read implements azfs.Backend
func (c *Client) Read(ctx context.Context, containerName, name string) (io.ReadCloser, error) {
	resp, err := c.client.DownloadStream(ctx, containerName, name, nil)
	if err != nil {
		return nil, mapError("read", containerName, name, err)
	}
	return resp.Body, nil
}

// Write implements azfs.Backend
func (c *Client) Write(ctx context.Context, containerName, name string, data []byte) error {
	_, err := c.client.UploadBuffer(ctx, containerName, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &azblobblob.HTTPHeaders{BlobContentType: to.Ptr(contentType(name))},
	})
	if err != nil {
		return mapError("write", containerName, name, err)
	}
	c.logger.Debug("blob written", slog.String("container", containerName), slog.String("name", name),
		slog.Int("bytes", len(data)))
	return nil
}

// Delete implements azfs.Backend
func (c *Client) Delete(ctx context.Context, containerName, name string, opts ...options.DeleteOption) error {
	var deleteOpts *azblob.DeleteBlobOptions
	if delete.HasIncludeSnapshots(opts) {
		deleteOpts = &azblob.DeleteBlobOptions{DeleteSnapshots: to.Ptr(azblobblob.DeleteSnapshotsOptionTypeInclude)}
	}
	if _, err := c.client.DeleteBlob(ctx, containerName, name, deleteOpts); err != nil {
		return mapError("delete", containerName, name, err)
	}
	return nil
}

// Properties implements azfs.Backend.  A missing blob that is the prefix of other blobs is reported as a directory.
func (c *Client) Properties(ctx context.Context, containerName, name string) (*azfs.Info, error) {
	resp, err := c.containerClient(containerName).NewBlobClient(name).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			if dir, derr := c.virtualDirectory(ctx, containerName, name); derr == nil && dir != nil {
				return dir, nil
			}
		}
		return nil, mapError("properties", containerName, name, err)
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
	if strings.EqualFold(info.Metadata["hdi_isfolder"], "true") {
		info.Type = azfs.InfoTypeDirectory
	}
	return info, nil
}

func (c *Client) virtualDirectory(ctx context.Context, containerName, name string) (*azfs.Info, error) {
	prefix := utils.EnsureTrailingSlash(name)
	pager := c.client.NewListBlobsFlatPager(containerName, &azblob.ListBlobsFlatOptions{
		Prefix:     &prefix,
		MaxResults: to.Ptr(int32(1)),
	})
	if !pager.More() {
		return nil, nil
	}
	resp, err := pager.NextPage(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Segment.BlobItems) == 0 {
		return nil, nil
	}
	return &azfs.Info{Name: utils.BaseName(name), Path: name, Type: azfs.InfoTypeDirectory, Metadata: map[string]string{}}, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func mapError(op, containerName, name string, err error) error {
	p := containerName + "/" + name
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return azfs.NewPathError(op, p, azfs.ErrNotFound, err)
	}
	if bloberror.HasCode(err, bloberror.AuthenticationFailed, bloberror.AuthorizationFailure) {
		return azfs.NewPathError(op, p, azfs.ErrAuthentication, err)
	}
	return backend.MapError(op, p, err)
}

func init() {
	backend.Register(azfs.KindBlob, New)
}

var _ azfs.Backend = (*Client)(nil)
