// Package mesh provides an immutable polygon mesh and the geometric
// attributes derived from it.
package mesh

import (
	"errors"

	"github.com/Faultbox/spatial3d/pkg/math"
)

var (
	// ErrEmptyMesh is returned by queries that need at least one vertex or face.
	ErrEmptyMesh = errors.New("empty mesh")
	// ErrIndexOutOfRange is returned when a face or accessor references a
	// vertex or face that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Face is an ordered list of at least three vertex indices. Counter-clockwise
// winding seen from outside gives the outward normal by the right-hand rule.
type Face []int

// Edge is an undirected edge between two vertices, stored with A < B.
type Edge struct {
	A, B int
}

// NewEdge returns the canonical edge between vertices a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Triangle is one triangle of a face's fan triangulation.
type Triangle struct {
	// Face is the index of the face this triangle came from.
	Face int
	// Indices are the vertex indices, in the face's winding order.
	Indices [3]int
	// V holds the vertex positions.
	V [3]math.Vec3
}

// Mapper maps points and directions. Both math.Mat4 and
// transform.Transform satisfy it. Mesh.Transform accepts only rigid
// mappings; a Mapper that can be non-rigid reports it through IsRigid.
type Mapper interface {
	ApplyPoint(p math.Vec3) math.Vec3
	ApplyVector(v math.Vec3) math.Vec3
}

// rigidity is implemented by mappers such as math.Mat4 that may scale,
// shear or mirror.
type rigidity interface {
	IsRigid(tol math.Tolerance) bool
}

// Option configures a Mesh in New.
type Option func(*Mesh)

// WithName sets the mesh name.
func WithName(name string) Option {
	return func(m *Mesh) {
		m.name = name
	}
}

// WithNormals supplies per-vertex normals. There must be one per vertex.
// Supplied normals are used as given instead of computed ones.
func WithNormals(normals []math.Vec3) Option {
	return func(m *Mesh) {
		m.normals = append([]math.Vec3(nil), normals...)
	}
}

// WithTolerance sets the tolerance used for degenerate-geometry checks.
func WithTolerance(tol math.Tolerance) Option {
	return func(m *Mesh) {
		m.tol = tol
	}
}
