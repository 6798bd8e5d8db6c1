package azfs

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/c2fo/azfs/options"
)

// Kind identifies an Azure storage service sharing a storage account.  The set is closed; every Kind maps to at most
// one backend factory.
type Kind int

const (
	// KindBlob is Azure Blob Storage (https://{account}.blob.core.windows.net)
	KindBlob Kind = iota + 1
	// KindDataLake is Azure Data Lake Storage Gen2, the hierarchical namespace (https://{account}.dfs.core.windows.net)
	KindDataLake
	// KindQueue is Azure Queue Storage (https://{account}.queue.core.windows.net)
	KindQueue
	// KindTable is Azure Table Storage (https://{account}.table.core.windows.net)
	KindTable
)

// Kinds lists every supported Kind in declaration order.
var Kinds = []Kind{KindBlob, KindDataLake, KindQueue, KindTable}

// String returns the host label used by the service endpoint, ie: blob, dfs, queue, table
func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindDataLake:
		return "dfs"
	case KindQueue:
		return "queue"
	case KindTable:
		return "table"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsFileKind reports whether the kind stores path-addressed objects (Blob and Data Lake).
func (k Kind) IsFileKind() bool {
	return k == KindBlob || k == KindDataLake
}

// ParseKind returns the Kind for an endpoint host label.
func ParseKind(label string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == label {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown storage kind %q: %w", label, ErrInvalidPath)
}

// ListingEntry is a single item returned by a backend listing.
type ListingEntry struct {
	// Name is the last path segment, without any trailing slash.
	Name string

	// FullPath is the path relative to the container.  Directories keep a trailing slash.
	FullPath string

	IsDirectory  bool
	Size         *int64
	LastModified *time.Time
}

// Info holds the metadata returned by a properties probe.
type Info struct {
	Name         string
	Path         string
	Size         int64
	CreationTime *time.Time
	LastModified *time.Time
	ETag         string
	ContentType  string

	// Type is one of InfoTypeFile, InfoTypeDirectory or InfoTypeQueue.
	Type string

	Metadata map[string]string
}

// Info.Type values
const (
	InfoTypeFile      = "file"
	InfoTypeDirectory = "directory"
	InfoTypeQueue     = "queue"
)

// Backend is the capability set every storage kind implements.  A Backend is bound to one storage account and one
// credential; the container (file system, queue) is supplied on every call.  Implementations must be safe for
// concurrent use once constructed.
type Backend interface {
	// List returns the entries under prefix, which is relative to the container and is either empty or ends with a
	// slash.  When recursive is false, only immediate children are returned and sub-directories appear once, as
	// directory entries.  A prefix with no children yields an empty slice and no error.
	List(ctx context.Context, container, prefix string, recursive bool) ([]ListingEntry, error)

	// Read returns a reader for the object.  Callers must close it.
	Read(ctx context.Context, container, name string) (io.ReadCloser, error)

	// Write creates or replaces the object with data.
	Write(ctx context.Context, container, name string, data []byte) error

	// Delete removes the object.  Deleting a missing object returns an error wrapping ErrNotFound.
	Delete(ctx context.Context, container, name string, opts ...options.DeleteOption) error

	// Properties returns object metadata without downloading content.  A missing object returns an error wrapping
	// ErrNotFound.
	Properties(ctx context.Context, container, name string) (*Info, error)
}
