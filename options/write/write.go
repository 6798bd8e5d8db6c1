package write

import (
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

const (
	optionNameCompression = "writeCompression"
	optionNameNoHeader    = "writeNoHeader"
)

// WithCompression returns Compression implementation of WriteOption
//
// WithCompression selects the codec used when writing pickle frames.  The default is gzip.
func WithCompression(c utils.Compression) options.WriteOption {
	return Compression(c)
}

// Compression represents the WriteOption holding the codec for pickle frames.
type Compression utils.Compression

// WriteOptionName returns the name of Compression option
func (Compression) WriteOptionName() string {
	return optionNameCompression
}

// WithNoHeader returns NoHeader implementation of WriteOption
//
// WithNoHeader drops the header line when writing CSV and TSV frames.
func WithNoHeader() options.WriteOption {
	return NoHeader{}
}

// NoHeader represents the WriteOption that suppresses the CSV/TSV header line.
type NoHeader struct{}

// WriteOptionName returns the name of NoHeader option
func (NoHeader) WriteOptionName() string {
	return optionNameNoHeader
}

// Settings is the resolved form of a list of WriteOptions.
type Settings struct {
	Compression utils.Compression
	Header      bool
}

// Resolve folds opts over the defaults (gzip, header on).
func Resolve(opts []options.WriteOption) Settings {
	s := Settings{Compression: utils.CompressionGzip, Header: true}
	for _, o := range opts {
		switch v := o.(type) {
		case Compression:
			s.Compression = utils.Compression(v)
		case NoHeader:
			s.Header = false
		}
	}
	return s
}
