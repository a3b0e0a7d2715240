package mesh

import (
	"fmt"
	"sync"

	"github.com/Faultbox/spatial3d/pkg/math"
)

// Mesh is an immutable polygon mesh. Derived data is computed on first use
// and cached, so a *Mesh can be shared by concurrent readers.
type Mesh struct {
	name     string
	vertices []math.Vec3
	faces    []Face
	normals  []math.Vec3 // supplied per-vertex normals, nil when absent
	tol      math.Tolerance

	vertexOnce    sync.Once
	vertexNormals []math.Vec3
	vertexValid   []bool

	triOnce   sync.Once
	triangles []Triangle
}

// New builds a mesh from vertex positions and faces. The slices are copied.
// Faces with fewer than three indices return math.ErrDegenerateInput and
// indices outside the vertex list return ErrIndexOutOfRange.
func New(vertices []math.Vec3, faces []Face, opts ...Option) (*Mesh, error) {
	m := &Mesh{
		vertices: append([]math.Vec3(nil), vertices...),
		faces:    make([]Face, len(faces)),
		tol:      math.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tol <= 0 {
		m.tol = math.DefaultTolerance
	}

	for i, f := range faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices", math.ErrDegenerateInput, i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexOutOfRange, i, idx, len(vertices))
			}
		}
		m.faces[i] = append(Face(nil), f...)
	}

	if m.normals != nil {
		if len(m.normals) != len(m.vertices) {
			return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrIndexOutOfRange, len(m.normals), len(m.vertices))
		}
		for i, n := range m.normals {
			unit, err := n.NormalizeTol(m.tol)
			if err != nil {
				return nil, fmt.Errorf("normal %d: %w", i, err)
			}
			m.normals[i] = unit
		}
	}
	return m, nil
}

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// Tolerance returns the tolerance used for degenerate-geometry checks.
func (m *Mesh) Tolerance() math.Tolerance { return m.tol }

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumFaces returns the face count.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// HasNormals reports whether per-vertex normals were supplied.
func (m *Mesh) HasNormals() bool { return m.normals != nil }

// Vertices returns a copy of the vertex positions.
func (m *Mesh) Vertices() []math.Vec3 {
	return append([]math.Vec3(nil), m.vertices...)
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) (math.Vec3, error) {
	if i < 0 || i >= len(m.vertices) {
		return math.Vec3{}, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(m.vertices))
	}
	return m.vertices[i], nil
}

// Faces returns a deep copy of the faces.
func (m *Mesh) Faces() []Face {
	out := make([]Face, len(m.faces))
	for i, f := range m.faces {
		out[i] = append(Face(nil), f...)
	}
	return out
}

// Face returns a copy of face i.
func (m *Mesh) Face(i int) (Face, error) {
	if err := m.checkFace(i); err != nil {
		return nil, err
	}
	return append(Face(nil), m.faces[i]...), nil
}

func (m *Mesh) checkFace(i int) error {
	if i < 0 || i >= len(m.faces) {
		return fmt.Errorf("%w: face %d of %d", ErrIndexOutOfRange, i, len(m.faces))
	}
	return nil
}

// Bounds returns the axis-aligned box around all vertices. A mesh with no
// vertices returns ErrEmptyMesh.
func (m *Mesh) Bounds() (math.AABB, error) {
	box, ok := math.BoundPoints(m.vertices)
	if !ok {
		return math.AABB{}, fmt.Errorf("%w: no vertices to bound", ErrEmptyMesh)
	}
	return box, nil
}

// Transform returns a new mesh with every vertex mapped as a point and every
// supplied normal mapped as a direction and renormalized. Topology and name
// are unchanged. A mapping that scales, shears or mirrors would leave the
// normals and winding wrong, so it returns math.ErrNotRotation; use Scale
// for uniform scaling.
func (m *Mesh) Transform(t Mapper) (*Mesh, error) {
	if r, ok := t.(rigidity); ok && !r.IsRigid(m.tol) {
		return nil, fmt.Errorf("%w: mesh transform must be rigid", math.ErrNotRotation)
	}

	vertices := make([]math.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = t.ApplyPoint(v)
	}

	opts := []Option{WithName(m.name), WithTolerance(m.tol)}
	if m.normals != nil {
		normals := make([]math.Vec3, len(m.normals))
		for i, n := range m.normals {
			normals[i] = t.ApplyVector(n)
		}
		opts = append(opts, WithNormals(normals))
	}
	return New(vertices, m.faces, opts...)
}

// Scale returns the mesh scaled about the origin. A negative factor mirrors
// the mesh through the origin, so face winding is reversed and supplied
// normals are flipped to keep them outward. A zero factor returns
// math.ErrDegenerateInput.
func (m *Mesh) Scale(s float64) (*Mesh, error) {
	if m.tol.Zero(s) {
		return nil, fmt.Errorf("%w: scale factor %g", math.ErrDegenerateInput, s)
	}

	vertices := make([]math.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = v.Scale(s)
	}

	faces := m.faces
	if s < 0 {
		faces = make([]Face, len(m.faces))
		for i, f := range m.faces {
			faces[i] = reversed(f)
		}
	}

	opts := []Option{WithName(m.name), WithTolerance(m.tol)}
	if m.normals != nil {
		normals := make([]math.Vec3, len(m.normals))
		for i, n := range m.normals {
			if s < 0 {
				n = n.Neg()
			}
			normals[i] = n
		}
		opts = append(opts, WithNormals(normals))
	}
	return New(vertices, faces, opts...)
}

// Centered returns the mesh translated so its bounding box is centered on
// the origin, together with the offset that was subtracted.
func (m *Mesh) Centered() (*Mesh, math.Vec3, error) {
	box, err := m.Bounds()
	if err != nil {
		return nil, math.Vec3{}, err
	}
	center := box.Center()
	out, err := m.Transform(math.TranslateVec(center.Neg()))
	if err != nil {
		return nil, math.Vec3{}, err
	}
	return out, center, nil
}

// Edges returns every undirected edge once, in the order first seen.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var edges []Edge
	for _, f := range m.faces {
		for i := range f {
			e := NewEdge(f[i], f[(i+1)%len(f)])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// ConsistentWinding reports whether every directed edge is used by at most
// one face. Two faces sharing an edge in the same direction have opposite
// orientations.
func (m *Mesh) ConsistentWinding() bool {
	seen := make(map[[2]int]struct{})
	for _, f := range m.faces {
		for i := range f {
			d := [2]int{f[i], f[(i+1)%len(f)]}
			if _, ok := seen[d]; ok {
				return false
			}
			seen[d] = struct{}{}
		}
	}
	return true
}

// Triangles returns the fan triangulation of every face. The slice is shared
// and must not be modified.
func (m *Mesh) Triangles() []Triangle {
	m.triOnce.Do(func() {
		var tris []Triangle
		for fi, f := range m.faces {
			for k := 1; k+1 < len(f); k++ {
				idx := [3]int{f[0], f[k], f[k+1]}
				tris = append(tris, Triangle{
					Face:    fi,
					Indices: idx,
					V:       [3]math.Vec3{m.vertices[idx[0]], m.vertices[idx[1]], m.vertices[idx[2]]},
				})
			}
		}
		m.triangles = tris
	})
	return m.triangles
}

func reversed(f Face) Face {
	out := make(Face, len(f))
	for i, idx := range f {
		out[len(f)-1-i] = idx
	}
	return out
}
