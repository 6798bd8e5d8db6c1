package delete

import "github.com/c2fo/azfs/options"

const optionNameDeleteIncludeSnapshots = "deleteIncludeSnapshots"

// WithIncludeSnapshots returns IncludeSnapshots implementation of DeleteOption
func WithIncludeSnapshots() options.DeleteOption {
	return IncludeSnapshots{}
}

// IncludeSnapshots represents the DeleteOption that is used to remove a blob together with all of its snapshots.
// Backends without snapshots ignore it.
type IncludeSnapshots struct{}

// DeleteOptionName returns the name of IncludeSnapshots option
func (w IncludeSnapshots) DeleteOptionName() string {
	return optionNameDeleteIncludeSnapshots
}

// HasIncludeSnapshots reports whether opts contains IncludeSnapshots.
func HasIncludeSnapshots(opts []options.DeleteOption) bool {
	for _, o := range opts {
		if _, ok := o.(IncludeSnapshots); ok {
			return true
		}
	}
	return false
}
