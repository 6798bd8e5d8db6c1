// Package pattern expands glob patterns over a paginated, hierarchical namespace.
//
// A pattern is split on "/" and walked one segment at a time.  The matcher only ever lists prefixes that can still
// contain a match, so a pattern such as "2024/*/part-*.csv" issues one listing for "2024/" and one per matching
// sub-directory.
package pattern
