package list_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/list"
)

func TestWithAttachPrefix(t *testing.T) {
	opt := list.WithAttachPrefix()
	assert.Equal(t, "listAttachPrefix", opt.ListOptionName())
	assert.True(t, list.HasAttachPrefix([]options.ListOption{opt}))
	assert.False(t, list.HasAttachPrefix(nil))
}
