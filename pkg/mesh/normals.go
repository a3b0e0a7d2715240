package mesh

import (
	"fmt"

	"github.com/Faultbox/spatial3d/pkg/math"
)

// newell returns the area vector of a polygon: its direction is the face
// normal and its length is twice the area. For a triangle it equals
// (v1-v0)×(v2-v0); for non-planar polygons it is the best-fit normal.
func (m *Mesh) newell(f Face) math.Vec3 {
	var n math.Vec3
	for i := range f {
		a := m.vertices[f[i]]
		b := m.vertices[f[(i+1)%len(f)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// longestEdgeSq returns the squared length of the longest edge of f.
func (m *Mesh) longestEdgeSq(f Face) float64 {
	var longest float64
	for i := range f {
		e := m.vertices[f[(i+1)%len(f)]].Sub(m.vertices[f[i]])
		if d := e.Dot(e); d > longest {
			longest = d
		}
	}
	return longest
}

// FaceNormal returns the unit outward normal of face i. A face whose area is
// negligible next to its longest edge squared returns
// math.ErrDegenerateInput, so the test holds at any scale.
func (m *Mesh) FaceNormal(i int) (math.Vec3, error) {
	if err := m.checkFace(i); err != nil {
		return math.Vec3{}, err
	}
	f := m.faces[i]
	area := m.newell(f)
	if l := area.Length(); l == 0 || l <= float64(m.tol)*m.longestEdgeSq(f) {
		return math.Vec3{}, fmt.Errorf("%w: face %d has zero area", math.ErrDegenerateInput, i)
	}
	return area.Scale(1 / area.Length()), nil
}

// FaceArea returns the area of face i.
func (m *Mesh) FaceArea(i int) (float64, error) {
	if err := m.checkFace(i); err != nil {
		return 0, err
	}
	return m.newell(m.faces[i]).Length() / 2, nil
}

// FaceCentroid returns the average of the vertices of face i.
func (m *Mesh) FaceCentroid(i int) (math.Vec3, error) {
	if err := m.checkFace(i); err != nil {
		return math.Vec3{}, err
	}
	f := m.faces[i]
	var sum math.Vec3
	for _, idx := range f {
		sum = sum.Add(m.vertices[idx])
	}
	return sum.Scale(1 / float64(len(f))), nil
}

// VertexNormal returns the normal at vertex i: the supplied normal if the
// mesh has them, otherwise the area-weighted average of the adjacent face
// normals. A vertex with no adjacent faces, or whose adjacent faces cancel,
// returns math.ErrDegenerateInput.
func (m *Mesh) VertexNormal(i int) (math.Vec3, error) {
	if i < 0 || i >= len(m.vertices) {
		return math.Vec3{}, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(m.vertices))
	}
	if m.normals != nil {
		return m.normals[i], nil
	}
	m.computeVertexNormals()
	if !m.vertexValid[i] {
		return math.Vec3{}, fmt.Errorf("%w: vertex %d has no usable adjacent face", math.ErrDegenerateInput, i)
	}
	return m.vertexNormals[i], nil
}

// VertexNormals returns a normal for every vertex, failing on the first
// vertex that has none.
func (m *Mesh) VertexNormals() ([]math.Vec3, error) {
	if m.normals != nil {
		return append([]math.Vec3(nil), m.normals...), nil
	}
	out := make([]math.Vec3, len(m.vertices))
	for i := range m.vertices {
		n, err := m.VertexNormal(i)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// computeVertexNormals accumulates each face's area vector onto its
// vertices. The vectors are unnormalized, so larger faces weigh more.
func (m *Mesh) computeVertexNormals() {
	m.vertexOnce.Do(func() {
		sums := make([]math.Vec3, len(m.vertices))
		// weights holds the summed area lengths, the largest |sum| can be.
		weights := make([]float64, len(m.vertices))
		for _, f := range m.faces {
			area := m.newell(f)
			l := area.Length()
			if l <= float64(m.tol)*m.longestEdgeSq(f) {
				continue
			}
			for _, idx := range f {
				sums[idx] = sums[idx].Add(area)
				weights[idx] += l
			}
		}

		m.vertexNormals = make([]math.Vec3, len(m.vertices))
		m.vertexValid = make([]bool, len(m.vertices))
		for i, s := range sums {
			l := s.Length()
			if l == 0 || l <= float64(m.tol)*weights[i] {
				continue
			}
			n := s.Scale(1 / l)
			m.vertexNormals[i] = n
			m.vertexValid[i] = true
		}
	})
}
