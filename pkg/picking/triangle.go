package picking

import (
	gomath "math"

	"github.com/Faultbox/spatial3d/pkg/math"
)

// Hit is the result of a ray query. A miss is a Hit with OK false; it is
// never reported as an error.
type Hit struct {
	OK bool
	// T is the ray parameter of the hit point.
	T     float64
	Point math.Vec3
	// Bary holds the barycentric weights of the triangle's three vertices.
	// They sum to one.
	Bary [3]float64
	// Face is the mesh face that was hit, or -1 for a bare triangle.
	Face int

	// triangle orders hits at equal T so brute force and the KD-tree agree.
	triangle int
}

// Miss returns the miss result.
func Miss() Hit {
	return Hit{Face: -1, triangle: -1}
}

// closerThan reports whether h should replace best as the closest hit.
func (h Hit) closerThan(best Hit) bool {
	if !h.OK {
		return false
	}
	if !best.OK || h.T < best.T {
		return true
	}
	return h.T == best.T && h.triangle < best.triangle
}

// Options controls ray-triangle tests.
type Options struct {
	// CullBackFaces rejects hits on the side a face's normal points away from.
	CullBackFaces bool
	// Tolerance widens triangle edges and rejects near-parallel rays.
	// Zero means math.DefaultTolerance.
	Tolerance math.Tolerance
}

func orDefault(tol math.Tolerance) math.Tolerance {
	if tol <= 0 {
		return math.DefaultTolerance
	}
	return tol
}

// IntersectTriangle intersects r with the triangle (v0, v1, v2) using the
// Möller-Trumbore algorithm. Hits on an edge or vertex, within the
// tolerance, count. A ray parallel to the triangle's plane, or one that
// meets it behind the origin, misses.
//
// The parallel test compares the cosine between the ray and the plane
// normal against the tolerance, so it does not depend on the triangle's
// size. A hit within the tolerance behind the origin is reported at T = 0.
func IntersectTriangle(r Ray, v0, v1, v2 math.Vec3, opts Options) Hit {
	tol := float64(orDefault(opts.Tolerance))

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)

	// |det| = |d·(e1×e2)|, twice the area times the cosine.
	area2 := e1.Cross(e2).Length()
	if area2 == 0 || gomath.Abs(det) <= tol*area2 {
		// Degenerate triangle, or parallel.
		return Miss()
	}
	if opts.CullBackFaces && det < 0 {
		return Miss()
	}
	inv := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < -tol || u > 1+tol {
		return Miss()
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < -tol || u+v > 1+tol {
		return Miss()
	}

	t := e2.Dot(q) * inv
	if t < -tol {
		return Miss()
	}
	if t < 0 {
		t = 0
	}

	return Hit{
		OK:       true,
		T:        t,
		Point:    r.At(t),
		Bary:     [3]float64{1 - u - v, u, v},
		Face:     -1,
		triangle: -1,
	}
}
