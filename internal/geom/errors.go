package geom

import "errors"

var (
	// ErrZeroVector indicates an attempt to normalize a vector of length zero.
	ErrZeroVector = errors.New("geom: cannot normalize a zero vector")

	// ErrDivideByZero indicates a vector divided by a zero scalar.
	ErrDivideByZero = errors.New("geom: divide by zero")
)
