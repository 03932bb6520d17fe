package noise

import "errors"

var (
	// ErrInvalidParameter is returned by New when a size, the point count,
	// the threshold or the worker count is out of its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOutOfRange is returned by GetSlice for a z outside [0, SizeZ).
	ErrOutOfRange = errors.New("slice index out of range")

	// ErrNotGenerated is returned when the grid is read before Generate has completed.
	ErrNotGenerated = errors.New("field not generated")

	// ErrAlreadyGenerated is returned by a second call to Generate on the same field.
	ErrAlreadyGenerated = errors.New("field already generated")
)
