package frame

import (
	"fmt"
	"slices"

	"github.com/c2fo/azfs"
)

// Frame is a small string table: a header and rows of cells.  Rows always have len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// New returns a Frame with the given columns and rows.  Short rows are padded; long rows fail.
func New(columns []string, rows ...[]string) (*Frame, error) {
	f := &Frame{Columns: slices.Clone(columns)}
	for i, r := range rows {
		if len(r) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells for %d columns: %w", i, len(r), len(columns), azfs.ErrInvalidArgument)
		}
		f.Rows = append(f.Rows, pad(r, len(columns)))
	}
	return f, nil
}

// FromRecords builds a Frame from maps.  Columns appear in first-seen order across the records, sorted within a
// record for determinism.
func FromRecords(records []map[string]any) *Frame {
	f := &Frame{}
	index := map[string]int{}
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(f.Columns)
				f.Columns = append(f.Columns, k)
			}
		}
	}
	for _, rec := range records {
		row := make([]string, len(f.Columns))
		for k, v := range rec {
			if v != nil {
				row[index[k]] = fmt.Sprint(v)
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	return slices.Index(f.Columns, name)
}

// Column returns the cells of a column, or nil when it does not exist.
func (f *Frame) Column(name string) []string {
	i := f.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(f.Rows))
	for r, row := range f.Rows {
		out[r] = row[i]
	}
	return out
}

// Records returns one map per row keyed by column name.
func (f *Frame) Records() []map[string]string {
	out := make([]map[string]string, len(f.Rows))
	for r, row := range f.Rows {
		rec := make(map[string]string, len(f.Columns))
		for i, c := range f.Columns {
			rec[c] = row[i]
		}
		out[r] = rec
	}
	return out
}

// Concat stacks frames by rows.  The result has the union of the columns in first-seen order; cells a frame does not
// have are empty.  Nil frames are skipped.
func Concat(frames ...*Frame) *Frame {
	out := &Frame{}
	index := map[string]int{}
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, c := range f.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, row := range f.Rows {
			merged := make([]string, len(out.Columns))
			for i, c := range f.Columns {
				merged[index[c]] = row[i]
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

func pad(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}
