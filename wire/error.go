package wire

import (
	"github.com/pkg/errors"
)

var (
	// ErrInsufficientBytes is returned when a buffer ends before a declared or
	// fixed width field can be fully read.
	ErrInsufficientBytes = errors.New("Insufficient bytes")

	// ErrInvalidFormat is returned when data is structurally present but not
	// valid, like a malformed transaction id string.
	ErrInvalidFormat = errors.New("Invalid format")
)
