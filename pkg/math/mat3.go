package math

import (
	"fmt"
	"math"
)

// Mat3 is a 3x3 matrix in column-major order.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromRows builds a matrix from row-major nested arrays, the natural
// layout for literal data: rows[r][c] is the entry at row r, column c.
func Mat3FromRows(rows [3][3]float64) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[c*3+r] = rows[r][c]
		}
	}
	return m
}

// Mat3FromCols builds a matrix whose columns are x, y and z.
func Mat3FromCols(x, y, z Vec3) Mat3 {
	return Mat3{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	}
}

// Mat3FromBasis builds a rotation matrix from three basis vectors. The
// vectors must be unit length, mutually perpendicular and right-handed
// (x × y = z); otherwise ErrNotRotation is returned.
func Mat3FromBasis(x, y, z Vec3, tol Tolerance) (Mat3, error) {
	m := Mat3FromCols(x, y, z)
	if !m.IsRotation(tol) {
		return Mat3{}, fmt.Errorf("%w: basis %v %v %v", ErrNotRotation, x, y, z)
	}
	return m, nil
}

// Mat3RotateAxis returns the rotation by angle about axis. The axis is
// normalized; a zero axis returns ErrDegenerateInput.
func Mat3RotateAxis(axis Vec3, angle float64) (Mat3, error) {
	n, err := axis.Normalize()
	if err != nil {
		return Mat3{}, fmt.Errorf("rotation axis: %w", err)
	}

	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	x, y, z := n.X, n.Y, n.Z

	return Mat3{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	}, nil
}

// Scale3 returns a diagonal scale matrix.
func Scale3(x, y, z float64) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

// At returns the entry at row r, column c.
func (m Mat3) At(r, c int) float64 {
	return m[c*3+r]
}

// Row returns row r.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r], m[3+r], m[6+r]}
}

// Col returns column c.
func (m Mat3) Col(c int) Vec3 {
	return Vec3{m[c*3], m[c*3+1], m[c*3+2]}
}

// Mul returns m * other, i.e. other is applied first.
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns mᵗ.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// Inverse returns m⁻¹, or ErrSingularMatrix when |det| <= DefaultTolerance.
func (m Mat3) Inverse() (Mat3, error) {
	return m.InverseTol(DefaultTolerance)
}

// InverseTol is Inverse with an explicit tolerance on the determinant.
func (m Mat3) InverseTol(tol Tolerance) (Mat3, error) {
	a, b, c := m.Col(0), m.Col(1), m.Col(2)
	r0 := b.Cross(c)
	r1 := c.Cross(a)
	r2 := a.Cross(b)

	det := a.Dot(r0)
	if tol.orDefault().Zero(det) {
		return Mat3{}, fmt.Errorf("%w: det=%g", ErrSingularMatrix, det)
	}

	// The rows of the inverse are the cross products scaled by 1/det.
	inv := 1 / det
	return Mat3FromCols(r0, r1, r2).Transpose().scale(inv), nil
}

// IsRotation reports whether m is orthonormal with determinant +1.
func (m Mat3) IsRotation(tol Tolerance) bool {
	tol = tol.orDefault()
	// Orthonormality is checked with a looser bound than the caller's
	// tolerance because mᵗm accumulates round-off from nine products.
	ortho := tol * 10
	if !m.Transpose().Mul(m).ApproxEqualTol(Identity3(), ortho) {
		return false
	}
	return ortho.Equal(m.Det(), 1)
}

// ApproxEqual reports whether every entry differs by at most
// DefaultTolerance.
func (m Mat3) ApproxEqual(other Mat3) bool {
	return m.ApproxEqualTol(other, DefaultTolerance)
}

// ApproxEqualTol is ApproxEqual with an explicit tolerance.
func (m Mat3) ApproxEqualTol(other Mat3, tol Tolerance) bool {
	tol = tol.orDefault()
	for i := range m {
		if !tol.Equal(m[i], other[i]) {
			return false
		}
	}
	return true
}

// Mat4 widens m to a homogeneous matrix with no translation.
func (m Mat3) Mat4() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

// String prints the matrix row by row.
func (m Mat3) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8])
}

func (m Mat3) scale(s float64) Mat3 {
	for i := range m {
		m[i] *= s
	}
	return m
}
