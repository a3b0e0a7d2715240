package math

import (
	"fmt"
	"math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// BoundPoints returns the smallest box containing every point. An empty
// slice reports ok=false.
func BoundPoints(points []Vec3) (box AABB, ok bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box = AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.ExpandPoint(p)
	}
	return box, true
}

// ExpandPoint returns the box grown to include p.
func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Pad returns the box expanded by amount on every side.
func (b AABB) Pad(amount float64) AABB {
	d := Vec3{amount, amount, amount}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Size returns the extent along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Corners returns the eight corner points. The first four share Min.Z, the
// last four share Max.Z.
func (b AABB) Corners() [8]Vec3 {
	lo, hi := b.Min, b.Max
	return [8]Vec3{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {hi.X, hi.Y, lo.Z}, {lo.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z}, {hi.X, lo.Y, hi.Z}, {hi.X, hi.Y, hi.Z}, {lo.X, hi.Y, hi.Z},
	}
}

// BoundingSphereRadius returns the radius of the sphere centered on the box
// that passes through its corners.
func (b AABB) BoundingSphereRadius() float64 {
	return b.Size().Length() / 2
}

// Contains reports whether p lies inside or on the box, with tol slack.
func (b AABB) Contains(p Vec3, tol Tolerance) bool {
	t := float64(tol.orDefault())
	return p.X >= b.Min.X-t && p.X <= b.Max.X+t &&
		p.Y >= b.Min.Y-t && p.Y <= b.Max.Y+t &&
		p.Z >= b.Min.Z-t && p.Z <= b.Max.Z+t
}

// Overlaps reports whether two boxes intersect or touch.
func (b AABB) Overlaps(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Split cuts the box with the plane axis=value and returns the lower and
// upper halves. A plane on or outside the box returns ErrDegenerateInput.
func (b AABB) Split(axis int, value float64) (lower, upper AABB, err error) {
	lo, hi := b.Min.Component(axis), b.Max.Component(axis)
	if value <= lo || value >= hi {
		return AABB{}, AABB{}, fmt.Errorf("%w: split plane %g outside (%g, %g)", ErrDegenerateInput, value, lo, hi)
	}
	lower = AABB{Min: b.Min, Max: b.Max.WithComponent(axis, value)}
	upper = AABB{Min: b.Min.WithComponent(axis, value), Max: b.Max}
	return lower, upper, nil
}

// LongestAxis returns the axis with the largest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	switch {
	case s.X >= s.Y && s.X >= s.Z:
		return 0
	case s.Y >= s.Z:
		return 1
	}
	return 2
}

// Transform returns the box enclosing this box after m is applied. The
// result is conservative for rotations.
func (b AABB) Transform(m interface{ ApplyPoint(Vec3) Vec3 }) AABB {
	corners := b.Corners()
	out := AABB{Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}, Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}}
	for _, c := range corners {
		out = out.ExpandPoint(m.ApplyPoint(c))
	}
	return out
}

// String formats the box as Min..Max.
func (b AABB) String() string {
	return fmt.Sprintf("%v..%v", b.Min, b.Max)
}
