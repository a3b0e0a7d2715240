package picking

import (
	"fmt"

	"github.com/Faultbox/spatial3d/pkg/mesh"
	"github.com/Faultbox/spatial3d/pkg/transform"
)

// Caster answers closest-hit ray queries against a fixed mesh.
type Caster interface {
	Intersect(r Ray) Hit
}

// IntersectMesh returns the closest hit of r against every triangle of m.
// A mesh without faces returns mesh.ErrEmptyMesh.
func IntersectMesh(r Ray, m *mesh.Mesh, opts Options) (Hit, error) {
	if m.NumFaces() == 0 {
		return Miss(), fmt.Errorf("%w: no faces to intersect", mesh.ErrEmptyMesh)
	}
	return closestHit(r, m.Triangles(), opts), nil
}

// IntersectMeshTransformed casts a world-space ray against m placed in the
// world by place. The ray is mapped into the mesh's local frame, so T is in
// world units; Point is reported in world space.
func IntersectMeshTransformed(r Ray, m *mesh.Mesh, place transform.Transform, opts Options) (Hit, error) {
	local, err := r.Transform(place.Inverse())
	if err != nil {
		return Miss(), err
	}
	hit, err := IntersectMesh(local, m, opts)
	if err != nil || !hit.OK {
		return hit, err
	}
	hit.Point = place.ApplyPoint(hit.Point)
	return hit, nil
}

// closestHit tests every triangle.
func closestHit(r Ray, tris []mesh.Triangle, opts Options) Hit {
	best := Miss()
	for i := range tris {
		best = testTriangle(r, tris, i, opts, best)
	}
	return best
}

// closestOf tests only the triangles at the given positions.
func closestOf(r Ray, tris []mesh.Triangle, which []int, opts Options) Hit {
	best := Miss()
	for _, i := range which {
		best = testTriangle(r, tris, i, opts, best)
	}
	return best
}

func testTriangle(r Ray, tris []mesh.Triangle, i int, opts Options, best Hit) Hit {
	tri := tris[i]
	h := IntersectTriangle(r, tri.V[0], tri.V[1], tri.V[2], opts)
	if !h.OK {
		return best
	}
	h.Face = tri.Face
	h.triangle = i
	if h.closerThan(best) {
		return h
	}
	return best
}

// BruteForce casts rays against every triangle of a mesh.
type BruteForce struct {
	Mesh    *mesh.Mesh
	Options Options
}

// Intersect returns the closest hit, or a miss for a mesh without faces.
func (b BruteForce) Intersect(r Ray) Hit {
	return closestHit(r, b.Mesh.Triangles(), b.Options)
}
