package read

import (
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

const (
	optionNameConcurrency = "readConcurrency"
	optionNameCompression = "readCompression"
)

// WithConcurrency returns Concurrency implementation of ReadOption
//
// WithConcurrency sets the number of workers a batched read fetches with.  Values below 2 read sequentially.
func WithConcurrency(n int) options.ReadOption {
	return Concurrency(n)
}

// Concurrency represents the ReadOption holding the batch worker count.
type Concurrency int

// ReadOptionName returns the name of Concurrency option
func (Concurrency) ReadOptionName() string {
	return optionNameConcurrency
}

// WithCompression returns Compression implementation of ReadOption
//
// WithCompression overrides the codec used to decode pickle frames.  By default the codec is sniffed from the payload.
func WithCompression(c utils.Compression) options.ReadOption {
	return Compression(c)
}

// Compression represents the ReadOption holding the codec used for pickle frames.
type Compression utils.Compression

// ReadOptionName returns the name of Compression option
func (Compression) ReadOptionName() string {
	return optionNameCompression
}

// Settings is the resolved form of a list of ReadOptions.
type Settings struct {
	Concurrency int
	Compression utils.Compression
}

// Resolve folds opts over the defaults.  Later options win.
func Resolve(opts []options.ReadOption) Settings {
	s := Settings{Concurrency: 1}
	for _, o := range opts {
		switch v := o.(type) {
		case Concurrency:
			s.Concurrency = int(v)
		case Compression:
			s.Compression = utils.Compression(v)
		}
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	return s
}
