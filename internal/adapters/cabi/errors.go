package cabi

import "errors"

// ErrPanic wraps a value recovered at the library boundary.
var ErrPanic = errors.New("panic at library boundary")
