package math

import (
	"fmt"
	"math"
)

// EulerOrder says whether an Euler sequence rotates about the moving
// (intrinsic) or the fixed (extrinsic) axes.
type EulerOrder int

const (
	// Intrinsic rotations are about the axes of the rotating frame:
	// XYZ means X, then the new Y, then the newer Z. R = Rx·Ry·Rz.
	Intrinsic EulerOrder = iota
	// Extrinsic rotations are about the fixed world axes:
	// XYZ means world X, then world Y, then world Z. R = Rz·Ry·Rx.
	Extrinsic
)

func (o EulerOrder) String() string {
	switch o {
	case Intrinsic:
		return "intrinsic"
	case Extrinsic:
		return "extrinsic"
	}
	return fmt.Sprintf("EulerOrder(%d)", int(o))
}

// EulerSequence is an ordered triple of rotation axes (0=X, 1=Y, 2=Z).
type EulerSequence [3]int

// The twelve valid axis sequences: six proper Euler and six Tait-Bryan.
var (
	XYX = EulerSequence{0, 1, 0}
	XZX = EulerSequence{0, 2, 0}
	YXY = EulerSequence{1, 0, 1}
	YZY = EulerSequence{1, 2, 1}
	ZXZ = EulerSequence{2, 0, 2}
	ZYZ = EulerSequence{2, 1, 2}
	XYZ = EulerSequence{0, 1, 2}
	XZY = EulerSequence{0, 2, 1}
	YXZ = EulerSequence{1, 0, 2}
	YZX = EulerSequence{1, 2, 0}
	ZXY = EulerSequence{2, 0, 1}
	ZYX = EulerSequence{2, 1, 0}
)

// EulerSequences lists all valid sequences.
var EulerSequences = []EulerSequence{XYX, XZX, YXY, YZY, ZXZ, ZYZ, XYZ, XZY, YXZ, YZX, ZXY, ZYX}

// Valid reports whether consecutive axes differ and every axis is in range.
func (s EulerSequence) Valid() bool {
	for _, a := range s {
		if a < 0 || a > 2 {
			return false
		}
	}
	return s[0] != s[1] && s[1] != s[2]
}

// IsTaitBryan reports whether all three axes are distinct.
func (s EulerSequence) IsTaitBryan() bool {
	return s[0] != s[2]
}

// Reverse returns the sequence in reverse order.
func (s EulerSequence) Reverse() EulerSequence {
	return EulerSequence{s[2], s[1], s[0]}
}

func (s EulerSequence) String() string {
	const names = "XYZ"
	if !s.Valid() {
		return fmt.Sprintf("EulerSequence%v", [3]int(s))
	}
	return string([]byte{names[s[0]], names[s[1]], names[s[2]]})
}

// Euler is a set of three angles about Sequence, applied in Order.
type Euler struct {
	Angles   [3]float64
	Sequence EulerSequence
	Order    EulerOrder
}

func axisVector(axis int) Vec3 {
	return Vec3{}.WithComponent(axis, 1)
}

// QuatFromEuler builds the rotation described by e. An invalid sequence
// returns ErrDegenerateInput.
func QuatFromEuler(e Euler) (Quat, error) {
	if !e.Sequence.Valid() {
		return Quat{}, fmt.Errorf("%w: invalid Euler sequence %v", ErrDegenerateInput, e.Sequence)
	}

	q := QuatIdentity()
	for i, axis := range e.Sequence {
		// Unit basis vectors never fail to normalize.
		step, _ := QuatFromAxisAngle(axisVector(axis), e.Angles[i])
		if e.Order == Intrinsic {
			// Each step rotates about the already-rotated frame.
			q = q.Mul(step)
		} else {
			q = step.Mul(q)
		}
	}
	return q, nil
}

// QuatFromEulerZYX builds the aerospace yaw-pitch-roll rotation: intrinsic
// Z (yaw), then Y′ (pitch), then X″ (roll).
func QuatFromEulerZYX(yaw, pitch, roll float64) Quat {
	// ZYX is a valid sequence, so this cannot fail.
	q, _ := QuatFromEuler(Euler{Angles: [3]float64{yaw, pitch, roll}, Sequence: ZYX, Order: Intrinsic})
	return q
}

// Euler returns the primary Euler angles of q for the given sequence and
// order. Angles are wrapped to (-π, π]. At gimbal lock the decomposition is
// not unique; the third angle of the extrinsic form is reported and the
// first is set to zero.
func (q Quat) Euler(seq EulerSequence, order EulerOrder) (Euler, error) {
	all, err := q.EulerSolutions(seq, order)
	if err != nil {
		return Euler{}, err
	}
	return all[0], nil
}

// EulerSolutions returns every Euler decomposition of q: two in general,
// one at gimbal lock.
func (q Quat) EulerSolutions(seq EulerSequence, order EulerOrder) ([]Euler, error) {
	if !seq.Valid() {
		return nil, fmt.Errorf("%w: invalid Euler sequence %v", ErrDegenerateInput, seq)
	}
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	// An intrinsic sequence equals the reversed extrinsic sequence with the
	// angles reversed, so everything below works in the extrinsic frame.
	ext := seq
	if order == Intrinsic {
		ext = seq.Reverse()
	}

	angles, gimbal := extrinsicEuler(q, ext)
	solutions := [][3]float64{angles}
	if !gimbal {
		alt := [3]float64{angles[0] + math.Pi, -angles[1], angles[2] + math.Pi}
		if ext.IsTaitBryan() {
			alt[1] = math.Pi - angles[1]
		}
		solutions = append(solutions, alt)
	}

	out := make([]Euler, 0, len(solutions))
	for _, a := range solutions {
		for i := range a {
			a[i] = wrapAngle(a[i])
		}
		if order == Intrinsic {
			a[0], a[2] = a[2], a[0]
		}
		out = append(out, Euler{Angles: a, Sequence: seq, Order: order})
	}
	return out, nil
}

// extrinsicEuler decomposes a unit quaternion into extrinsic angles about
// seq, reporting whether the middle angle sits at a gimbal singularity.
//
// Tait-Bryan sequences are handled by the same formula as proper Euler
// sequences after a change of variables that shifts the middle angle by
// π/2 (Bernardes & Viollet, 2022).
func extrinsicEuler(q Quat, seq EulerSequence) ([3]float64, bool) {
	comp := [3]float64{q.X, q.Y, q.Z}
	i, j, k := seq[0], seq[1], seq[2]
	symmetric := i == k
	if symmetric {
		k = 3 - i - j
	}
	// +1 for an even permutation of (x, y, z), -1 for an odd one.
	sign := float64((i - j) * (j - k) * (k - i) / 2)

	var a, b, c, d float64
	if symmetric {
		a, b, c, d = q.W, comp[i], comp[j], comp[k]*sign
	} else {
		a = q.W - comp[j]
		b = comp[i] + comp[k]*sign
		c = comp[j] + q.W
		d = comp[k]*sign - comp[i]
	}

	var angles [3]float64
	angles[1] = 2 * math.Atan2(math.Hypot(c, d), math.Hypot(a, b))

	const gimbalEps = 1e-7
	halfSum := math.Atan2(b, a)
	halfDiff := math.Atan2(d, c)

	gimbal := true
	switch {
	case math.Abs(angles[1]) <= gimbalEps:
		angles[0] = 0
		angles[2] = 2 * halfSum
	case math.Abs(angles[1]-math.Pi) <= gimbalEps:
		angles[0] = 0
		angles[2] = 2 * halfDiff
	default:
		gimbal = false
		angles[0] = halfSum - halfDiff
		angles[2] = halfSum + halfDiff
	}

	if !symmetric {
		angles[2] *= sign
		angles[1] -= math.Pi / 2
	}
	return angles, gimbal
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
