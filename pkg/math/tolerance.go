package math

import "math"

// Tolerance is the threshold below which two floating-point values, or a
// vector magnitude, are treated as equal or zero.
//
// Operations that depend on a tolerance come in pairs: the plain form uses
// DefaultTolerance and the Tol-suffixed form takes one from the caller.
type Tolerance float64

// DefaultTolerance is used by every operation that is not given a tolerance.
const DefaultTolerance Tolerance = 1e-9

// Zero reports whether |x| <= tol.
func (tol Tolerance) Zero(x float64) bool {
	return math.Abs(x) <= float64(tol)
}

// Equal reports whether |a-b| <= tol.
func (tol Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) <= float64(tol)
}

// orDefault returns DefaultTolerance for a non-positive tolerance.
func (tol Tolerance) orDefault() Tolerance {
	if tol <= 0 {
		return DefaultTolerance
	}
	return tol
}
