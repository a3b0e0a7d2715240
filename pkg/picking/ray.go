// Package picking provides ray casting and proximity queries against meshes.
package picking

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay returns a ray with a normalized direction. A zero direction returns
// math.ErrDegenerateInput.
func NewRay(origin, direction math.Vec3) (Ray, error) {
	d, err := direction.Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray direction: %w", err)
	}
	return Ray{Origin: origin, Direction: d}, nil
}

// RayFromNDC unprojects normalized device coordinates (each in [-1, 1]) to a
// world-space ray through the near and far clip planes. invViewProj is the
// inverse of the view-projection matrix.
func RayFromNDC(ndcX, ndcY float64, invViewProj math.Mat4) (Ray, error) {
	// ApplyPoint performs the perspective divide.
	near := invViewProj.ApplyPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.ApplyPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return NewRay(near, far.Sub(near))
}

// At returns the point at parameter t.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform maps the origin as a point and the direction as a vector, then
// renormalizes the direction. Ray parameters are preserved only by rigid
// mappings.
func (r Ray) Transform(m mesh.Mapper) (Ray, error) {
	return NewRay(m.ApplyPoint(r.Origin), m.ApplyVector(r.Direction))
}

func (r Ray) String() string {
	return fmt.Sprintf("%v + t*%v", r.Origin, r.Direction)
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. It returns false when the ray is parallel to the plane or
// the plane is behind the origin.
func (r Ray) IntersectPlane(point, normal math.Vec3, tol math.Tolerance) (t float64, ok bool) {
	// Ray: P = Origin + t * Direction
	// Plane: (P - point)·normal = 0
	tol = orDefault(tol)
	denom := r.Direction.Dot(normal)
	if tol.Zero(denom) {
		return 0, false // Ray parallel to plane
	}

	t = point.Sub(r.Origin).Dot(normal) / denom
	if t < -float64(tol) {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box math.AABB) (t float64, hit bool) {
	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Component(axis)
		d := r.Direction.Component(axis)
		lo := box.Min.Component(axis)
		hi := box.Max.Component(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
