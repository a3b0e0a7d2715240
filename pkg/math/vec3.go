// Package math provides the vector, matrix and quaternion algebra used to
// build and compose rigid transforms.
//
// Conventions used throughout the module:
//   - vectors are column vectors and matrices are stored column-major;
//   - applying M to v is M·v, written m.MulVec(v) or m.ApplyPoint(v);
//   - applying M1 then M2 is M2·M1, written m2.Mul(m1);
//   - quaternions follow the same order: q1 then q2 is q2.Mul(q1);
//   - all angles are in radians.
package math

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector. It is used both for points and for free directions;
// which one is meant depends on the operation it is passed to.
type Vec3 struct {
	X, Y, Z float64
}

// UnitX returns the +X basis vector.
func UnitX() Vec3 { return Vec3{1, 0, 0} }

// UnitY returns the +Y basis vector.
func UnitY() Vec3 { return Vec3{0, 1, 0} }

// UnitZ returns the +Z basis vector.
func UnitZ() Vec3 { return Vec3{0, 0, 1} }

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / s. Dividing by a value within DefaultTolerance of zero
// returns ErrDegenerateInput.
func (v Vec3) Div(s float64) (Vec3, error) {
	return v.DivTol(s, DefaultTolerance)
}

// DivTol is Div with an explicit tolerance.
func (v Vec3) DivTol(s float64, tol Tolerance) (Vec3, error) {
	if tol.orDefault().Zero(s) {
		return Vec3{}, fmt.Errorf("%w: division of %v by %g", ErrDegenerateInput, v, s)
	}
	return Vec3{v.X / s, v.Y / s, v.Z / s}, nil
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the right-handed cross product v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSq returns the squared magnitude.
func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns a unit vector with the direction of v.
// A zero-length v returns ErrDegenerateInput.
func (v Vec3) Normalize() (Vec3, error) {
	return v.NormalizeTol(DefaultTolerance)
}

// NormalizeTol is Normalize with an explicit tolerance on the length.
func (v Vec3) NormalizeTol(tol Tolerance) (Vec3, error) {
	l := v.Length()
	if tol.orDefault().Zero(l) {
		return Vec3{}, fmt.Errorf("%w: cannot normalize zero-length vector %v", ErrDegenerateInput, v)
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// AngleTo returns the unsigned angle between v and other in [0, π].
// Either vector having zero length returns ErrDegenerateInput.
func (v Vec3) AngleTo(other Vec3) (float64, error) {
	return v.AngleToTol(other, DefaultTolerance)
}

// AngleToTol is AngleTo with an explicit tolerance.
func (v Vec3) AngleToTol(other Vec3, tol Tolerance) (float64, error) {
	tol = tol.orDefault()
	lengths := v.Length() * other.Length()
	if tol.Zero(v.Length()) || tol.Zero(other.Length()) {
		return 0, fmt.Errorf("%w: angle with zero-length vector", ErrDegenerateInput)
	}
	return math.Acos(clamp(v.Dot(other)/lengths, -1, 1)), nil
}

// Lerp linearly interpolates from v (t=0) to other (t=1).
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return Vec3{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
	}
}

// ApproxEqual reports whether every component differs by at most
// DefaultTolerance.
func (v Vec3) ApproxEqual(other Vec3) bool {
	return v.ApproxEqualTol(other, DefaultTolerance)
}

// ApproxEqualTol is ApproxEqual with an explicit tolerance.
func (v Vec3) ApproxEqualTol(other Vec3, tol Tolerance) bool {
	tol = tol.orDefault()
	return tol.Equal(v.X, other.X) && tol.Equal(v.Y, other.Y) && tol.Equal(v.Z, other.Z)
}

// IsZero reports whether v has length within tol of zero.
func (v Vec3) IsZero(tol Tolerance) bool {
	return tol.orDefault().Zero(v.Length())
}

// IsUnit reports whether v has length within tol of one.
func (v Vec3) IsUnit(tol Tolerance) bool {
	return tol.orDefault().Equal(v.Length(), 1)
}

// IsPerpendicular reports whether v and other are perpendicular within tol.
func (v Vec3) IsPerpendicular(other Vec3, tol Tolerance) bool {
	return tol.orDefault().Zero(v.Dot(other))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Min returns the componentwise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the componentwise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// Component returns X, Y or Z for axis 0, 1 or 2.
func (v Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("math: axis %d out of range", axis))
}

// WithComponent returns a copy of v with the given axis set to value.
func (v Vec3) WithComponent(axis int, value float64) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("math: axis %d out of range", axis))
	}
	return v
}

// String formats v as (x, y, z).
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
