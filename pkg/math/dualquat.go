package math

// DualQuat is a unit dual quaternion r + dε encoding a rigid motion:
// Real is the rotation and Dual = ½·t·Real, where t is the translation
// as a pure quaternion.
type DualQuat struct {
	Real Quat
	Dual Quat
}

// DualQuatIdentity returns the identity motion.
func DualQuatIdentity() DualQuat {
	return DualQuat{Real: QuatIdentity()}
}

// DualQuatFromRotationTranslation encodes "rotate by r, then translate by t".
func DualQuatFromRotationTranslation(r Quat, t Vec3) DualQuat {
	tq := Quat{X: t.X, Y: t.Y, Z: t.Z}
	return DualQuat{Real: r, Dual: tq.Mul(r).Scale(0.5)}
}

// Mul composes two motions; other is applied first.
func (d DualQuat) Mul(other DualQuat) DualQuat {
	return DualQuat{
		Real: d.Real.Mul(other.Real),
		Dual: d.Real.Mul(other.Dual).Add(d.Dual.Mul(other.Real)),
	}
}

// Conjugate returns the quaternion conjugate of both parts, which inverts a
// unit dual quaternion.
func (d DualQuat) Conjugate() DualQuat {
	return DualQuat{Real: d.Real.Conjugate(), Dual: d.Dual.Conjugate()}
}

// Rotation returns the rotation part.
func (d DualQuat) Rotation() Quat {
	return d.Real
}

// Translation recovers t = 2·Dual·Real*.
func (d DualQuat) Translation() Vec3 {
	t := d.Dual.Scale(2).Mul(d.Real.Conjugate())
	return Vec3{t.X, t.Y, t.Z}
}

// ApplyPoint rotates then translates p.
func (d DualQuat) ApplyPoint(p Vec3) Vec3 {
	return d.Real.Rotate(p).Add(d.Translation())
}

// ApplyVector rotates v; translation does not affect directions.
func (d DualQuat) ApplyVector(v Vec3) Vec3 {
	return d.Real.Rotate(v)
}

// Normalize rescales both parts so Real is unit length and removes the
// component of Dual along Real that round-off introduces.
func (d DualQuat) Normalize() (DualQuat, error) {
	n := d.Real.Norm()
	r, err := d.Real.Normalize()
	if err != nil {
		return DualQuat{}, err
	}
	dual := d.Dual.Scale(1 / n)
	dual = dual.Sub(r.Scale(r.Dot(dual)))
	return DualQuat{Real: r, Dual: dual}, nil
}

// ApproxEqualTol reports componentwise equality of both parts.
func (d DualQuat) ApproxEqualTol(other DualQuat, tol Tolerance) bool {
	return d.Real.ApproxEqualTol(other.Real, tol) && d.Dual.ApproxEqualTol(other.Dual, tol)
}
