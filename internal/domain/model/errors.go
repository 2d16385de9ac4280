package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for sample validation. Both negative-field errors wrap
// ErrInvalidSample so callers can match either level with errors.Is.
var (
	ErrInvalidSample      = errors.New("invalid schedule sample")
	ErrNegativeBlockCount = fmt.Errorf("%w: negative block count", ErrInvalidSample)
	ErrNegativeMinutes    = fmt.Errorf("%w: negative total minutes", ErrInvalidSample)
)
