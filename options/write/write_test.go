package write_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/write"
	"github.com/c2fo/azfs/utils"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, write.Settings{Compression: utils.CompressionGzip, Header: true}, write.Resolve(nil))
	assert.Equal(t,
		write.Settings{Compression: utils.CompressionNone, Header: false},
		write.Resolve([]options.WriteOption{write.WithCompression(utils.CompressionNone), write.WithNoHeader()}),
	)
}
