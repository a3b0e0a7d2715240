// Package transform provides rigid transforms: a rotation followed by a
// translation.
package transform

import (
	"github.com/Faultbox/spatial3d/pkg/math"
)

// Rotation is a proper rotation in either matrix or quaternion form.
//
// Compose returns the rotation that applies inner first and the receiver
// second, in the receiver's representation.
type Rotation interface {
	Apply(v math.Vec3) math.Vec3
	Compose(inner Rotation) Rotation
	Inverse() Rotation
	Mat3() math.Mat3
	Quat() math.Quat
}

// MatrixRotation stores a rotation as an orthonormal Mat3. Its zero value
// is the identity rotation.
type MatrixRotation struct {
	M math.Mat3
}

func (r MatrixRotation) mat() math.Mat3 {
	if r.M == (math.Mat3{}) {
		return math.Identity3()
	}
	return r.M
}

// NewMatrixRotation validates m as a rotation within tol.
func NewMatrixRotation(m math.Mat3, tol math.Tolerance) (MatrixRotation, error) {
	if _, err := math.Mat3FromBasis(m.Col(0), m.Col(1), m.Col(2), tol); err != nil {
		return MatrixRotation{}, err
	}
	return MatrixRotation{M: m}, nil
}

func (r MatrixRotation) Apply(v math.Vec3) math.Vec3 {
	return r.mat().MulVec(v)
}

func (r MatrixRotation) Compose(inner Rotation) Rotation {
	return MatrixRotation{M: r.mat().Mul(inner.Mat3())}
}

// Inverse returns the transpose.
func (r MatrixRotation) Inverse() Rotation {
	return MatrixRotation{M: r.mat().Transpose()}
}

func (r MatrixRotation) Mat3() math.Mat3 {
	return r.mat()
}

func (r MatrixRotation) Quat() math.Quat {
	return math.QuatFromMat3(r.mat())
}

// QuatRotation stores a rotation as a unit quaternion. Its zero value is
// the identity rotation.
type QuatRotation struct {
	Q math.Quat
}

func (r QuatRotation) quat() math.Quat {
	if r.Q == (math.Quat{}) {
		return math.QuatIdentity()
	}
	return r.Q
}

// NewQuatRotation normalizes q. A zero quaternion returns
// math.ErrDegenerateInput.
func NewQuatRotation(q math.Quat) (QuatRotation, error) {
	n, err := q.Normalize()
	if err != nil {
		return QuatRotation{}, err
	}
	return QuatRotation{Q: n}, nil
}

func (r QuatRotation) Apply(v math.Vec3) math.Vec3 {
	return r.quat().Rotate(v)
}

// Compose renormalizes the product so drift does not build up over long
// chains.
func (r QuatRotation) Compose(inner Rotation) Rotation {
	q := r.quat().Mul(inner.Quat())
	if n, err := q.Normalize(); err == nil {
		q = n
	}
	return QuatRotation{Q: q}
}

// Inverse returns the conjugate.
func (r QuatRotation) Inverse() Rotation {
	return QuatRotation{Q: r.quat().Conjugate()}
}

func (r QuatRotation) Mat3() math.Mat3 {
	return r.quat().Mat3()
}

func (r QuatRotation) Quat() math.Quat {
	return r.quat()
}
