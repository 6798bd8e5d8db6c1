package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/utils"
)

// Separators of the delimited formats.
const (
	CommaSeparator = ','
	TabSeparator   = '\t'
)

func newReader(r io.Reader, sep rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false
	if sep == TabSeparator {
		cr.LazyQuotes = true
	}
	return cr
}

// ReadDelimited parses delimited text whose first record is the header.  Empty input yields an empty Frame.
func ReadDelimited(r io.Reader, sep rune) (*Frame, error) {
	cr := newReader(r, sep)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Frame{}, nil
	}
	if err != nil {
		return nil, utils.WrapDecodeError(err)
	}

	f := &Frame{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, utils.WrapDecodeError(err)
		}
		row, err := fit(cr, rec, len(header))
		if err != nil {
			return nil, err
		}
		f.Rows = append(f.Rows, row)
	}
}

// ReadDelimitedChunks parses delimited text and calls fn with frames of at most size rows.  Every chunk carries the
// header.  Returning an error from fn stops the iteration.
func ReadDelimitedChunks(r io.Reader, sep rune, size int, fn func(*Frame) error) error {
	if size < 1 {
		size = 1
	}
	cr := newReader(r, sep)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return utils.WrapDecodeError(err)
	}

	chunk := &Frame{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return utils.WrapDecodeError(err)
		}
		row, err := fit(cr, rec, len(header))
		if err != nil {
			return err
		}
		chunk.Rows = append(chunk.Rows, row)
		if len(chunk.Rows) == size {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = &Frame{Columns: header}
		}
	}
	if len(chunk.Rows) > 0 {
		return fn(chunk)
	}
	return nil
}

// WriteDelimited writes f as delimited text, with the header line unless header is false.
func WriteDelimited(w io.Writer, f *Frame, sep rune, header bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if header {
		if err := cw.Write(f.Columns); err != nil {
			return utils.WrapEncodeError(err)
		}
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return utils.WrapEncodeError(err)
	}
	return nil
}

// fit pads a short record to n cells.  A record with more cells than the header is an error.
func fit(cr *csv.Reader, rec []string, n int) ([]string, error) {
	if len(rec) > n {
		line, _ := cr.FieldPos(0)
		return nil, utils.WrapDecodeError(fmt.Errorf("line %d: expected %d fields, saw %d: %w",
			line, n, len(rec), azfs.ErrInvalidArgument))
	}
	return pad(rec, n), nil
}
