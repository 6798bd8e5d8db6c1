package pattern

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/utils"
)

// Lister returns the immediate children of a literal prefix.  The prefix is either empty (container root) or ends
// with a slash.  A prefix with no children yields an empty slice.
type Lister func(ctx context.Context, prefix string) ([]azfs.ListingEntry, error)

// HasWildcard reports whether s contains a glob metacharacter.
func HasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// segmentMatcher matches a single path segment.
type segmentMatcher func(name string) bool

func compileSegment(seg string) (segmentMatcher, error) {
	if !HasWildcard(seg) {
		return func(name string) bool { return name == seg }, nil
	}
	g, err := glob.Compile(seg, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern segment %q: %w", seg, azfs.ErrInvalidArgument)
	}
	return g.Match, nil
}

// Match expands pattern, a container-relative path whose segments may hold wildcards, into the matching entries.
// Wildcards never cross a slash.  Literal segments before the first wildcard extend the search prefix without a
// listing call.  Only the final segment may yield files; a pattern ending in a slash yields directories instead.
// Results are sorted by FullPath and free of duplicates.
func Match(ctx context.Context, pattern string, list Lister) ([]azfs.ListingEntry, error) {
	dirsOnly := strings.HasSuffix(pattern, "/")
	trimmed := strings.Trim(utils.CollapseSlashes(pattern), "/")
	if trimmed == "" {
		return nil, nil
	}
	segments := strings.Split(trimmed, "/")

	frontier := []string{""}
	var matched []azfs.ListingEntry
	for i, seg := range segments {
		final := i == len(segments)-1

		if !final && !HasWildcard(seg) {
			for j := range frontier {
				frontier[j] += seg + "/"
			}
			continue
		}

		match, err := compileSegment(seg)
		if err != nil {
			return nil, err
		}

		var next []string
		for _, prefix := range frontier {
			entries, err := list(ctx, prefix)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !match(e.Name) {
					continue
				}
				switch {
				case !final:
					if e.IsDirectory {
						next = append(next, utils.EnsureTrailingSlash(e.FullPath))
					}
				case dirsOnly == e.IsDirectory:
					matched = append(matched, e)
				}
			}
		}

		if !final {
			frontier = uniqueStrings(next)
			if len(frontier) == 0 {
				return nil, nil
			}
		}
	}

	return SortUnique(matched), nil
}

// SortUnique sorts entries by FullPath and drops repeated paths, keeping the first occurrence.
func SortUnique(entries []azfs.ListingEntry) []azfs.ListingEntry {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].FullPath < entries[j].FullPath })
	out := entries[:0]
	for i, e := range entries {
		if i > 0 && e.FullPath == out[len(out)-1].FullPath {
			continue
		}
		out = append(out, e)
	}
	return out
}

func uniqueStrings(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == out[len(out)-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
