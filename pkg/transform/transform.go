package transform

import (
	"fmt"

	"github.com/Faultbox/spatial3d/pkg/math"
)

// Transform is a rigid motion: rotate, then translate.
// The zero value is the identity.
type Transform struct {
	rot   Rotation
	trans math.Vec3
}

// New returns a transform with the given rotation and translation.
// A nil rotation is treated as the identity.
func New(r Rotation, t math.Vec3) Transform {
	return Transform{rot: r, trans: t}
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{rot: QuatRotation{Q: math.QuatIdentity()}}
}

// FromAxisAngleTranslation rotates by angle about axis, then translates by t.
func FromAxisAngleTranslation(axis math.Vec3, angle float64, t math.Vec3) (Transform, error) {
	q, err := math.QuatFromAxisAngle(axis, angle)
	if err != nil {
		return Transform{}, err
	}
	return Transform{rot: QuatRotation{Q: q}, trans: t}, nil
}

// FromQuat builds a transform from a quaternion, which is normalized, and a
// translation.
func FromQuat(q math.Quat, t math.Vec3) (Transform, error) {
	r, err := NewQuatRotation(q)
	if err != nil {
		return Transform{}, err
	}
	return Transform{rot: r, trans: t}, nil
}

// FromMat4 extracts a rigid transform from m. Matrices that are not affine
// or whose 3x3 block is not a proper rotation within tol return
// math.ErrNotRotation.
func FromMat4(m math.Mat4, tol math.Tolerance) (Transform, error) {
	if !m.IsAffine() {
		return Transform{}, fmt.Errorf("%w: matrix is projective", math.ErrNotRotation)
	}
	r, err := NewMatrixRotation(m.Rotation(), tol)
	if err != nil {
		return Transform{}, err
	}
	return Transform{rot: r, trans: m.Translation()}, nil
}

// FromDualQuat converts a dual quaternion, normalizing it first.
func FromDualQuat(d math.DualQuat) (Transform, error) {
	n, err := d.Normalize()
	if err != nil {
		return Transform{}, err
	}
	return Transform{rot: QuatRotation{Q: n.Rotation()}, trans: n.Translation()}, nil
}

func (t Transform) rotation() Rotation {
	if t.rot == nil {
		return QuatRotation{Q: math.QuatIdentity()}
	}
	return t.rot
}

// Rotation returns the rotation part.
func (t Transform) Rotation() Rotation {
	return t.rotation()
}

// Translation returns the translation part.
func (t Transform) Translation() math.Vec3 {
	return t.trans
}

// ApplyPoint returns R·p + t.
func (t Transform) ApplyPoint(p math.Vec3) math.Vec3 {
	return t.rotation().Apply(p).Add(t.trans)
}

// ApplyVector returns R·v. Translation does not affect directions.
func (t Transform) ApplyVector(v math.Vec3) math.Vec3 {
	return t.rotation().Apply(v)
}

// ApplyPoints maps every point into a new slice.
func (t Transform) ApplyPoints(points []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = t.ApplyPoint(p)
	}
	return out
}

// Compose returns the transform that applies inner first and t second:
// rotation R·R_inner and translation R·t_inner + t.
func (t Transform) Compose(inner Transform) Transform {
	r := t.rotation()
	return Transform{
		rot:   r.Compose(inner.rotation()),
		trans: r.Apply(inner.trans).Add(t.trans),
	}
}

// Then returns the transform that applies t first and next second.
func (t Transform) Then(next Transform) Transform {
	return next.Compose(t)
}

// Inverse returns the transform that undoes t: R⁻¹ and -R⁻¹·t.
func (t Transform) Inverse() Transform {
	inv := t.rotation().Inverse()
	return Transform{rot: inv, trans: inv.Apply(t.trans).Neg()}
}

// Mat4 returns the homogeneous matrix [R | t].
func (t Transform) Mat4() math.Mat4 {
	return math.Mat4FromRotationTranslation(t.rotation().Mat3(), t.trans)
}

// DualQuat returns the dual quaternion form.
func (t Transform) DualQuat() math.DualQuat {
	return math.DualQuatFromRotationTranslation(t.rotation().Quat(), t.trans)
}

// Basis returns the images of the X, Y and Z axes under the rotation.
func (t Transform) Basis() (x, y, z math.Vec3) {
	m := t.rotation().Mat3()
	return m.Col(0), m.Col(1), m.Col(2)
}

// ApproxEqual compares the homogeneous matrices entry by entry, so the
// two rotation representations compare equal when they agree.
func (t Transform) ApproxEqual(other Transform, tol math.Tolerance) bool {
	return t.Mat4().ApproxEqualTol(other.Mat4(), tol)
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform{R: %v, t: %v}", t.rotation().Quat(), t.trans)
}
