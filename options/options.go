package options

// NewClientOption is the interface for options applied when constructing a client of type T, ie: azfile.Client or
// tablestorage.Client.
// Example:
// ```
//
//	type loggerOpt struct{ logger *slog.Logger }
//	func (o *loggerOpt) Apply(c *Client) { c.logger = o.logger }
//	func (o *loggerOpt) NewClientOptionName() string { return "logger" }
//
// ```
type NewClientOption[T any] interface {
	Apply(*T)
	NewClientOptionName() string
}

// ApplyOptions applies each option to t in order.  Later options win.
func ApplyOptions[T any](t *T, opts ...NewClientOption[T]) {
	for _, o := range opts {
		if o != nil {
			o.Apply(t)
		}
	}
}

// DeleteOption interface contains function that should be implemented by any custom option to qualify as a delete option.
// Example:
// ```
//
//	type TakeBackupDeleteOption{}
//	func (o TakeBackupDeleteOption) DeleteOptionName() string {
//		return "take backup"
//	}
//
// ```
type DeleteOption interface {
	DeleteOptionName() string
}

// ListOption is implemented by options accepted by listing operations (Ls, Glob).
type ListOption interface {
	ListOptionName() string
}

// ReadOption is implemented by options accepted by read operations (batched Read, ReadPickle, ReadCSV).
type ReadOption interface {
	ReadOptionName() string
}

// WriteOption is implemented by options accepted by write operations (Put, WritePickle, WriteCSV).
type WriteOption interface {
	WriteOptionName() string
}
