package space

import "errors"

var (
	// ErrInvalidParams indicates a physical or tree parameter out of range.
	ErrInvalidParams = errors.New("space: invalid parameters")

	// ErrInvalidViewport indicates a non-positive viewport extent.
	ErrInvalidViewport = errors.New("space: viewport extent must be positive")
)
