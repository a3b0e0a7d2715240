package math

import (
	"fmt"
	"math"
)

// Mat4 is a 4x4 homogeneous matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// Vec4 is a 4-component homogeneous vector.
type Vec4 [4]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromRows builds a matrix from row-major nested arrays:
// rows[r][c] is the entry at row r, column c.
func Mat4FromRows(rows [4][4]float64) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return m
}

// Mat4FromRotationTranslation builds the affine matrix [R | t].
func Mat4FromRotationTranslation(r Mat3, t Vec3) Mat4 {
	m := r.Mat4()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// TranslateVec returns a translation matrix for v.
func TranslateVec(v Vec3) Mat4 {
	return Translate(v.X, v.Y, v.Z)
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateAxis creates a rotation matrix around an arbitrary axis.
// The axis is normalized here; a zero axis returns ErrDegenerateInput.
func RotateAxis(axis Vec3, angle float64) (Mat4, error) {
	r, err := Mat3RotateAxis(axis, angle)
	if err != nil {
		return Mat4{}, err
	}
	return r.Mat4(), nil
}

// LookAt returns the rigid view matrix for a viewer at eye looking at center.
// It fails with ErrDegenerateInput when eye and center coincide or when up is
// parallel to the viewing direction.
func LookAt(eye, center, up Vec3) (Mat4, error) {
	f, err := center.Sub(eye).Normalize()
	if err != nil {
		return Mat4{}, fmt.Errorf("look direction: %w", err)
	}
	s, err := f.Cross(up).Normalize()
	if err != nil {
		return Mat4{}, fmt.Errorf("up vector parallel to look direction: %w", err)
	}
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}, nil
}

// At returns the entry at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[c*4+r]
}

// Row returns row r.
func (m Mat4) Row(r int) Vec4 {
	return Vec4{m[r], m[4+r], m[8+r], m[12+r]}
}

// Col returns column c.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// Mul multiplies this matrix by another (m * other); other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// ApplyPoint transforms a point (w=1), dividing by w for projective matrices.
func (m Mat4) ApplyPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// ApplyVector transforms a direction vector (ignores translation).
func (m Mat4) ApplyVector(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Rotation returns the upper-left 3x3 block.
func (m Mat4) Rotation() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Transpose returns mᵗ.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// IsAffine reports whether the bottom row is exactly (0, 0, 0, 1).
func (m Mat4) IsAffine() bool {
	return m[3] == 0 && m[7] == 0 && m[11] == 0 && m[15] == 1
}

// IsRigid reports whether m is affine with a proper rotation block.
func (m Mat4) IsRigid(tol Tolerance) bool {
	return m.IsAffine() && m.Rotation().IsRotation(tol)
}

// Det returns the determinant.
func (m Mat4) Det() float64 {
	c := m.cofactors()
	return m[0]*c[0] + m[4]*c[1] + m[8]*c[2] + m[12]*c[3]
}

// Inverse returns the inverse of the matrix. A matrix whose determinant is
// within DefaultTolerance of zero returns ErrSingularMatrix.
func (m Mat4) Inverse() (Mat4, error) {
	return m.InverseTol(DefaultTolerance)
}

// InverseTol is Inverse with an explicit tolerance.
//
// Rigid matrices use the closed form [Rᵗ | -Rᵗt]. Other affine matrices
// invert the 3x3 block and map the translation through it. Projective
// matrices fall back to the full cofactor expansion.
func (m Mat4) InverseTol(tol Tolerance) (Mat4, error) {
	tol = tol.orDefault()

	if m.IsAffine() {
		r := m.Rotation()
		t := m.Translation()
		if r.IsRotation(tol) {
			rt := r.Transpose()
			return Mat4FromRotationTranslation(rt, rt.MulVec(t).Neg()), nil
		}
		inv, err := r.InverseTol(tol)
		if err != nil {
			return Mat4{}, err
		}
		return Mat4FromRotationTranslation(inv, inv.MulVec(t).Neg()), nil
	}

	c := m.cofactors()
	det := m[0]*c[0] + m[4]*c[1] + m[8]*c[2] + m[12]*c[3]
	if tol.Zero(det) {
		return Mat4{}, fmt.Errorf("%w: det=%g", ErrSingularMatrix, det)
	}

	invDet := 1.0 / det
	var result Mat4
	for i := range c {
		result[i] = c[i] * invDet
	}
	return result, nil
}

// cofactors returns the adjugate of m in column-major order.
func (m Mat4) cofactors() Mat4 {
	c00 := m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	c01 := -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	c02 := m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	c03 := -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]

	c10 := -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	c11 := m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	c12 := -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	c13 := m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]

	c20 := m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	c21 := -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	c22 := m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	c23 := -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]

	c30 := -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	c31 := m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	c32 := -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	c33 := m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	return Mat4{
		c00, c01, c02, c03,
		c10, c11, c12, c13,
		c20, c21, c22, c23,
		c30, c31, c32, c33,
	}
}

// ApproxEqual reports whether every entry differs by at most
// DefaultTolerance.
func (m Mat4) ApproxEqual(other Mat4) bool {
	return m.ApproxEqualTol(other, DefaultTolerance)
}

// ApproxEqualTol is ApproxEqual with an explicit tolerance.
func (m Mat4) ApproxEqualTol(other Mat4, tol Tolerance) bool {
	tol = tol.orDefault()
	for i := range m {
		if !tol.Equal(m[i], other[i]) {
			return false
		}
	}
	return true
}

// String prints the matrix row by row.
func (m Mat4) String() string {
	return fmt.Sprintf("[%g %g %g %g; %g %g %g %g; %g %g %g %g; %g %g %g %g]",
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15])
}
