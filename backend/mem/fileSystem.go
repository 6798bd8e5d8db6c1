package mem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

// Name is the human readable name of the backend
const Name = "In-Memory Storage"

type memObject struct {
	data         []byte
	created      time.Time
	lastModified time.Time
	contentType  string
}

type objMap map[string]*memObject

// FileSystem implements azfs.Backend in memory.  Containers spring into existence on first write.  In hierarchical
// mode directories behave like Data Lake directories (they have properties and can be deleted recursively);
// otherwise they are virtual, as in Blob Storage.
type FileSystem struct {
	mu           sync.RWMutex
	containers   map[string]objMap
	hierarchical bool
	now          func() time.Time
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithHierarchical turns on Data Lake style directory semantics.
func WithHierarchical() Option {
	return func(fs *FileSystem) { fs.hierarchical = true }
}

// WithClock replaces time.Now, ie: for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(fs *FileSystem) { fs.now = now }
}

// NewFileSystem returns an empty in-memory backend.
func NewFileSystem(opts ...Option) *FileSystem {
	fs := &FileSystem{containers: map[string]objMap{}, now: time.Now}
	for _, o := range opts {
		o(fs)
	}
	return fs
}

// Factory returns a backend.Factory that always hands out fs, ignoring account and credential.
func Factory(fs *FileSystem) backend.Factory {
	return func(backend.Config) (azfs.Backend, error) { return fs, nil }
}

// List implements azfs.Backend.  Listing a container that was never written to fails with azfs.ErrNotFound.
func (fs *FileSystem) List(_ context.Context, container, prefix string, recursive bool) ([]azfs.ListingEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	objs, ok := fs.containers[container]
	if !ok {
		return nil, azfs.NewPathError("list", container, azfs.ErrNotFound, nil)
	}
	seenDirs := map[string]bool{}
	entries := make([]azfs.ListingEntry, 0)
	for key, obj := range objs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if !recursive {
			if dir, _, nested := strings.Cut(rest, "/"); nested {
				if !seenDirs[dir] {
					seenDirs[dir] = true
					entries = append(entries, azfs.ListingEntry{Name: dir, FullPath: prefix + dir + "/", IsDirectory: true})
				}
				continue
			}
		}
		size := int64(len(obj.data))
		modified := obj.lastModified
		entries = append(entries, azfs.ListingEntry{
			Name:         utils.BaseName(key),
			FullPath:     key,
			Size:         &size,
			LastModified: &modified,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].FullPath < entries[j].FullPath })
	return entries, nil
}

// Read implements azfs.Backend
func (fs *FileSystem) Read(_ context.Context, container, name string) (io.ReadCloser, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	obj, ok := fs.containers[container][name]
	if !ok {
		return nil, notFound("read", container, name)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

// Write implements azfs.Backend
func (fs *FileSystem) Write(_ context.Context, container, name string, data []byte) error {
	if name == "" || strings.HasSuffix(name, "/") {
		return azfs.NewPathError("write", container+"/"+name, azfs.ErrInvalidArgument, nil)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	objs, ok := fs.containers[container]
	if !ok {
		objs = objMap{}
		fs.containers[container] = objs
	}
	now := fs.now()
	obj, ok := objs[name]
	if !ok {
		obj = &memObject{created: now, contentType: "application/octet-stream"}
		objs[name] = obj
	}
	obj.data = bytes.Clone(data)
	obj.lastModified = now
	return nil
}

// Delete implements azfs.Backend.  In hierarchical mode deleting a directory removes everything below it.
func (fs *FileSystem) Delete(_ context.Context, container, name string, _ ...options.DeleteOption) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	objs := fs.containers[container]
	if _, ok := objs[name]; ok {
		delete(objs, name)
		return nil
	}
	if fs.hierarchical {
		dir := utils.EnsureTrailingSlash(name)
		removed := false
		for key := range objs {
			if strings.HasPrefix(key, dir) {
				delete(objs, key)
				removed = true
			}
		}
		if removed {
			return nil
		}
	}
	return notFound("delete", container, name)
}

// Properties implements azfs.Backend
func (fs *FileSystem) Properties(_ context.Context, container, name string) (*azfs.Info, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	objs := fs.containers[container]
	if obj, ok := objs[name]; ok {
		created, modified := obj.created, obj.lastModified
		return &azfs.Info{
			Name:         utils.BaseName(name),
			Path:         name,
			Size:         int64(len(obj.data)),
			CreationTime: &created,
			LastModified: &modified,
			ETag:         fmt.Sprintf("\"0x%X\"", xxhash.Sum64(obj.data)),
			ContentType:  obj.contentType,
			Type:         azfs.InfoTypeFile,
			Metadata:     map[string]string{},
		}, nil
	}

	if fs.hierarchical {
		dir := utils.EnsureTrailingSlash(name)
		for key := range objs {
			if strings.HasPrefix(key, dir) {
				return &azfs.Info{
					Name:     utils.BaseName(name),
					Path:     name,
					Type:     azfs.InfoTypeDirectory,
					Metadata: map[string]string{"hdi_isfolder": "true"},
				}, nil
			}
		}
	}
	return nil, notFound("properties", container, name)
}

// Containers returns the names of every container holding at least one object.
func (fs *FileSystem) Containers() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	var names []string
	for name, objs := range fs.containers {
		if len(objs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func notFound(op, container, name string) error {
	return azfs.NewPathError(op, container+"/"+name, azfs.ErrNotFound, nil)
}

var _ azfs.Backend = (*FileSystem)(nil)
