package list

import "github.com/c2fo/azfs/options"

const optionNameAttachPrefix = "listAttachPrefix"

// WithAttachPrefix returns AttachPrefix implementation of ListOption
//
// WithAttachPrefix makes listing operations return absolute URLs instead of paths relative to the container.
func WithAttachPrefix() options.ListOption {
	return AttachPrefix{}
}

// AttachPrefix represents the ListOption that turns listing results into absolute URLs.
type AttachPrefix struct{}

// ListOptionName returns the name of AttachPrefix option
func (AttachPrefix) ListOptionName() string {
	return optionNameAttachPrefix
}

// HasAttachPrefix reports whether opts contains AttachPrefix.
func HasAttachPrefix(opts []options.ListOption) bool {
	for _, o := range opts {
		if _, ok := o.(AttachPrefix); ok {
			return true
		}
	}
	return false
}
