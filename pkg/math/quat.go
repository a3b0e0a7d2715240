package math

import (
	"fmt"
	"math"
)

// slerpLinearThreshold is the dot product above which Slerp falls back to a
// normalized lerp because sin(θ) is too small to divide by.
const slerpLinearThreshold = 0.9995

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
//
// Only unit quaternions represent rotations. q and -q represent the same
// rotation.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized here; a zero axis returns ErrDegenerateInput.
func QuatFromAxisAngle(axis Vec3, angle float64) (Quat, error) {
	n, err := axis.Normalize()
	if err != nil {
		return Quat{}, fmt.Errorf("rotation axis: %w", err)
	}
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return Quat{
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
		W: math.Cos(halfAngle),
	}, nil
}

// QuatFromMat3 converts a rotation matrix to a unit quaternion. m is not
// checked; a matrix that is not a rotation yields an arbitrary unit
// quaternion. Use QuatFromRotation for matrices from callers.
//
// The component computed from the square root is the largest of w, x, y and
// z (trace branch or largest-diagonal branch), so the divisor used for the
// remaining three components is never close to zero.
func QuatFromMat3(m Mat3) Quat {
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	trace := m00 + m11 + m22

	var q Quat
	switch {
	case trace > 0:
		s := 2 * math.Sqrt(trace+1)
		q = Quat{
			W: s / 4,
			X: (m.At(2, 1) - m.At(1, 2)) / s,
			Y: (m.At(0, 2) - m.At(2, 0)) / s,
			Z: (m.At(1, 0) - m.At(0, 1)) / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{
			W: (m.At(2, 1) - m.At(1, 2)) / s,
			X: s / 4,
			Y: (m.At(0, 1) + m.At(1, 0)) / s,
			Z: (m.At(0, 2) + m.At(2, 0)) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{
			W: (m.At(0, 2) - m.At(2, 0)) / s,
			X: (m.At(0, 1) + m.At(1, 0)) / s,
			Y: s / 4,
			Z: (m.At(1, 2) + m.At(2, 1)) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{
			W: (m.At(1, 0) - m.At(0, 1)) / s,
			X: (m.At(0, 2) + m.At(2, 0)) / s,
			Y: (m.At(1, 2) + m.At(2, 1)) / s,
			Z: s / 4,
		}
	}

	// Round-off in m leaves q slightly off unit length.
	if n, err := q.Normalize(); err == nil {
		q = n
	}
	return q
}

// QuatFromRotation is QuatFromMat3 for an unchecked matrix. A matrix that
// is not a proper rotation within tol returns ErrNotRotation.
func QuatFromRotation(m Mat3, tol Tolerance) (Quat, error) {
	if !m.IsRotation(tol) {
		return Quat{}, fmt.Errorf("%w: cannot convert to a quaternion", ErrNotRotation)
	}
	return QuatFromMat3(m), nil
}

// QuatFromMat4 converts the rotation block of m to a quaternion. Like
// QuatFromMat3 it does not check the block.
func QuatFromMat4(m Mat4) Quat {
	return QuatFromMat3(m.Rotation())
}

// Norm returns the length of the quaternion.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns a unit quaternion. A zero quaternion returns
// ErrDegenerateInput.
func (q Quat) Normalize() (Quat, error) {
	return q.NormalizeTol(DefaultTolerance)
}

// NormalizeTol is Normalize with an explicit tolerance.
func (q Quat) NormalizeTol(tol Tolerance) (Quat, error) {
	length := q.Norm()
	if tol.orDefault().Zero(length) {
		return Quat{}, fmt.Errorf("%w: cannot normalize zero quaternion", ErrDegenerateInput)
	}
	return q.Scale(1 / length), nil
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Add returns the componentwise sum.
func (q Quat) Add(other Quat) Quat {
	return Quat{q.X + other.X, q.Y + other.Y, q.Z + other.Z, q.W + other.W}
}

// Sub returns the componentwise difference.
func (q Quat) Sub(other Quat) Quat {
	return Quat{q.X - other.X, q.Y - other.Y, q.Z - other.Z, q.W - other.W}
}

// Scale returns q * s.
func (q Quat) Scale(s float64) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Neg returns -q, which represents the same rotation.
func (q Quat) Neg() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Conjugate returns the conjugate (x, y, z negated). For a unit quaternion
// this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns q⁻¹ = conj(q)/|q|². A quaternion whose norm is within
// DefaultTolerance of zero returns ErrDegenerateInput, the same bound
// Normalize uses.
func (q Quat) Inverse() (Quat, error) {
	return q.InverseTol(DefaultTolerance)
}

// InverseTol is Inverse with an explicit tolerance on the norm.
func (q Quat) InverseTol(tol Tolerance) (Quat, error) {
	if tol.orDefault().Zero(q.Norm()) {
		return Quat{}, fmt.Errorf("%w: zero quaternion has no inverse", ErrDegenerateInput)
	}
	return q.Conjugate().Scale(1 / q.Dot(q)), nil
}

// Mul multiplies two quaternions (Hamilton product q * other).
// The result applies other first, then q: rotation r1 followed by r2 is
// r2.Mul(r1).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate returns v rotated by the unit quaternion q.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u×v) + 2u×(u×v), the expanded form of q·v·q*.
	u := Vec3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// AxisAngle returns the rotation axis and angle in [0, π] of a unit
// quaternion. The identity rotation returns the X axis and a zero angle.
func (q Quat) AxisAngle() (Vec3, float64) {
	if q.W < 0 {
		q = q.Neg()
	}
	s := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	angle := 2 * math.Atan2(s, q.W)
	if DefaultTolerance.Zero(s) {
		return UnitX(), 0
	}
	return Vec3{q.X / s, q.Y / s, q.Z / s}, angle
}

// Angle returns the rotation angle in [0, π].
func (q Quat) Angle() float64 {
	_, a := q.AxisAngle()
	return a
}

// Slerp performs spherical linear interpolation between two unit
// quaternions along the shorter arc. t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float64) Quat {
	// Compute cos of angle between quaternions
	dot := q.Dot(other)

	// If dot is negative, negate one quaternion to take the shorter path
	if dot < 0 {
		other = other.Neg()
		dot = -dot
	}

	// If quaternions are very close, use linear interpolation to avoid division by zero
	if dot > slerpLinearThreshold {
		return q.lerpNormalized(other, t)
	}

	theta0 := math.Acos(clamp(dot, -1, 1))
	theta := theta0 * t
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)

	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return q.Scale(s0).Add(other.Scale(s1))
}

// Nlerp is the cheaper normalized linear interpolation along the shorter
// arc. It follows the same path as Slerp but not at constant speed.
func (q Quat) Nlerp(other Quat, t float64) Quat {
	if q.Dot(other) < 0 {
		other = other.Neg()
	}
	return q.lerpNormalized(other, t)
}

func (q Quat) lerpNormalized(other Quat, t float64) Quat {
	l := q.Add(other.Sub(q).Scale(t))
	n, err := l.Normalize()
	if err != nil {
		// Only reachable when q = -other, which shortest-arc selection excludes.
		return q
	}
	return n
}

// Mat3 converts the quaternion to a 3x3 rotation matrix. q is normalized
// first. A zero quaternion, which the validating constructors such as
// QuatFromAxisAngle never produce, maps to the identity, the value the
// conversion formula gives at q = 0.
func (q Quat) Mat3() Mat3 {
	if n, err := q.Normalize(); err == nil {
		q = n
	} else {
		return Identity3()
	}

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw),
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw),
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy),
	}
}

// Mat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) Mat4() Mat4 {
	return q.Mat3().Mat4()
}

// ApproxEqual reports componentwise equality within DefaultTolerance.
// It does not treat q and -q as equal; see SameRotation.
func (q Quat) ApproxEqual(other Quat) bool {
	return q.ApproxEqualTol(other, DefaultTolerance)
}

// ApproxEqualTol is ApproxEqual with an explicit tolerance.
func (q Quat) ApproxEqualTol(other Quat, tol Tolerance) bool {
	tol = tol.orDefault()
	return tol.Equal(q.X, other.X) && tol.Equal(q.Y, other.Y) &&
		tol.Equal(q.Z, other.Z) && tol.Equal(q.W, other.W)
}

// SameRotation reports whether q and other represent the same rotation,
// i.e. q ≈ other or q ≈ -other.
func (q Quat) SameRotation(other Quat, tol Tolerance) bool {
	return q.ApproxEqualTol(other, tol) || q.ApproxEqualTol(other.Neg(), tol)
}

// String formats q as (x, y, z; w).
func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g; %g)", q.X, q.Y, q.Z, q.W)
}
