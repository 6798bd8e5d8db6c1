package azfs

import (
	"errors"
	"fmt"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidPath - the URL does not match any known storage-kind shape
	ErrInvalidPath = Error("invalid storage path")

	// ErrAuthentication - the credential is missing or was rejected by the service
	ErrAuthentication = Error("authentication failed")

	// ErrConnectivity - the service endpoint could not be reached
	ErrConnectivity = Error("storage endpoint unreachable")

	// ErrNotFound - the target object, container or queue does not exist
	ErrNotFound = Error("object does not exist")

	// ErrFileExists - the destination already exists and overwriting was not requested
	ErrFileExists = Error("object already exists")

	// ErrUnsupportedOperation - the storage kind does not support the requested operation
	ErrUnsupportedOperation = Error("operation not supported for storage kind")

	// ErrInvalidArgument - the call arguments are inconsistent, ie: identical copy source and destination
	ErrInvalidArgument = Error("invalid argument")
)

// PathError records the operation, the path and the error kind of a failure together with the underlying cause.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

// NewPathError returns a *PathError.  kind should be one of the Err* constants; err may be nil.
func NewPathError(op, path string, kind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// Error implements the error interface
func (e *PathError) Error() string {
	if e.Err == nil || e.Kind == nil {
		cause := e.Err
		if cause == nil {
			cause = e.Kind
		}
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the error kind and the underlying cause to errors.Is and errors.As.
func (e *PathError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsNotFound reports whether err indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsExist reports whether err indicates an already existing destination.
func IsExist(err error) bool {
	return errors.Is(err, ErrFileExists)
}

// IsUnsupported reports whether err indicates an operation the storage kind cannot perform.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}
