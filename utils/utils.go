package utils

import (
	"io"
	"path"
	"strings"
)

// EnsureTrailingSlash is like filepath.Clean but with a trailing slash.  An empty string stays empty so it can be
// used as the container root listing prefix.
func EnsureTrailingSlash(dir string) string {
	if dir == "" || strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "/"
}

// RemoveTrailingSlash removes a trailing slash, if any.
func RemoveTrailingSlash(p string) string {
	if p == "/" {
		return p
	}
	return strings.TrimSuffix(p, "/")
}

// RemoveLeadingSlash removes a leading slash, if any.
func RemoveLeadingSlash(p string) string {
	return strings.TrimPrefix(p, "/")
}

// CollapseSlashes replaces runs of slashes with a single slash.
func CollapseSlashes(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p))
	prev := byte(0)
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && prev == '/' {
			continue
		}
		prev = p[i]
		b.WriteByte(p[i])
	}
	return b.String()
}

// BaseName returns the last segment of an object path, ignoring a trailing slash.
func BaseName(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// ParentPrefix returns the listing prefix of the directory holding p, ie: "a/b/c.txt" -> "a/b/", "c.txt" -> "".
func ParentPrefix(p string) string {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i+1]
}

// ReadAllAndClose reads r to EOF and closes it.  The close error is returned only when reading succeeded.
func ReadAllAndClose(r io.ReadCloser) ([]byte, error) {
	data, err := io.ReadAll(r)
	cerr := r.Close()
	if err != nil {
		return nil, WrapReadError(err)
	}
	if cerr != nil {
		return nil, WrapCloseError(cerr)
	}
	return data, nil
}

// Ptr returns a pointer to the given value.
func Ptr[T any](value T) *T {
	return &value
}

// Deref returns the value p points to, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
