package utils

import "fmt"

// WrapReadError returns a wrapped read error
func WrapReadError(err error) error {
	return wrap("read", err)
}

// WrapWriteError returns a wrapped write error
func WrapWriteError(err error) error {
	return wrap("write", err)
}

// WrapCloseError returns a wrapped close error
func WrapCloseError(err error) error {
	return wrap("close", err)
}

// WrapGetError returns a wrapped get error
func WrapGetError(err error) error {
	return wrap("get", err)
}

// WrapPutError returns a wrapped put error
func WrapPutError(err error) error {
	return wrap("put", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return wrap("list", err)
}

// WrapGlobError returns a wrapped glob error
func WrapGlobError(err error) error {
	return wrap("glob", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return wrap("delete", err)
}

// WrapInfoError returns a wrapped info error
func WrapInfoError(err error) error {
	return wrap("info", err)
}

// WrapExistsError returns a wrapped exists error
func WrapExistsError(err error) error {
	return wrap("exists", err)
}

// WrapCopyError returns a wrapped copy error
func WrapCopyError(err error) error {
	return wrap("copy", err)
}

// WrapDecodeError returns a wrapped decode error
func WrapDecodeError(err error) error {
	return wrap("decode", err)
}

// WrapEncodeError returns a wrapped encode error
func WrapEncodeError(err error) error {
	return wrap("encode", err)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s error: %w", op, err)
}
