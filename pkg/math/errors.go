package math

import "errors"

// Errors returned for invalid geometric input.
var (
	// ErrDegenerateInput is returned when an operation needs a well defined
	// direction, axis or normal and the input has zero length or area.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrSingularMatrix is returned when inverting a matrix whose determinant
	// is within tolerance of zero.
	ErrSingularMatrix = errors.New("singular matrix")
	// ErrNotRotation is returned when a matrix expected to be a proper
	// rotation is not orthonormal or has a negative determinant.
	ErrNotRotation = errors.New("matrix is not a proper rotation")
)
