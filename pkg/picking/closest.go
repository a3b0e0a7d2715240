package picking

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// Nearest is the result of a closest-point query against a mesh.
type Nearest struct {
	Point    math.Vec3
	Distance float64
	Face     int
}

// ClosestPointOnTriangle returns the point of triangle (a, b, c) nearest to
// p. It classifies p against the triangle's Voronoi regions (vertices, then
// edges, then the interior) following Ericson, Real-Time Collision
// Detection §5.1.5.
func ClosestPointOnTriangle(p, a, b, c math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	if ab.Cross(ac).LengthSq() == 0 {
		return closestOnDegenerate(p, a, b, c)
	}

	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// closestOnDegenerate handles triangles collapsed to a segment or a point.
func closestOnDegenerate(p, a, b, c math.Vec3) math.Vec3 {
	best := closestOnSegment(p, a, b)
	for _, q := range []math.Vec3{closestOnSegment(p, b, c), closestOnSegment(p, c, a)} {
		if q.Sub(p).LengthSq() < best.Sub(p).LengthSq() {
			best = q
		}
	}
	return best
}

func closestOnSegment(p, a, b math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return a
	}
	t := gomath.Max(0, gomath.Min(1, p.Sub(a).Dot(ab)/l2))
	return a.Add(ab.Scale(t))
}

// ClosestPoint returns the point on the surface of m nearest to p. A mesh
// without faces returns mesh.ErrEmptyMesh.
func ClosestPoint(m *mesh.Mesh, p math.Vec3) (Nearest, error) {
	tris := m.Triangles()
	if len(tris) == 0 {
		return Nearest{}, fmt.Errorf("%w: no faces to measure", mesh.ErrEmptyMesh)
	}

	best := Nearest{Distance: gomath.Inf(1), Face: -1}
	for _, tri := range tris {
		q := ClosestPointOnTriangle(p, tri.V[0], tri.V[1], tri.V[2])
		if d := q.Distance(p); d < best.Distance {
			best = Nearest{Point: q, Distance: d, Face: tri.Face}
		}
	}
	return best, nil
}

// Distance returns the distance from p to the surface of m.
func Distance(m *mesh.Mesh, p math.Vec3) (float64, error) {
	n, err := ClosestPoint(m, p)
	if err != nil {
		return 0, err
	}
	return n.Distance, nil
}
