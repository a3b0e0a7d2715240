package meshio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

const squareOBJ = `# unit square and a triangle
o square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
f 1/1 2/1 3/1 4/1
f -4 -2 -1
`

const wedgeSTL = `solid wedge
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid wedge
`

const triYAML = `name: tri
vertices:
  - [0, 0, 0]
  - [1, 0, 0]
  - [0, 1, 0]
faces:
  - [0, 1, 2]
normals:
  - [0, 0, 2]
  - [0, 0, 1]
  - [0, 0, 1]
`

func square(t *testing.T, opts ...mesh.Option) *mesh.Mesh {
	t.Helper()
	verts := []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	m, err := mesh.New(verts, []mesh.Face{{0, 1, 2, 3}}, append([]mesh.Option{mesh.WithName("square")}, opts...)...)
	require.NoError(t, err)
	return m
}

func TestReadOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(squareOBJ))
	require.NoError(t, err)

	assert.Equal(t, "square", m.Name())
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, []mesh.Face{{0, 1, 2, 3}, {0, 2, 3}}, m.Faces())
	assert.False(t, m.HasNormals())
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrMalformed},
		{"bad number", "v 1 x 2\n", ErrMalformed},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrMalformed},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformed},
		{"negative past start", "v 0 0 0\nf -1 -2 -3\n", ErrMalformed},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", mesh.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteOBJ(t *testing.T) {
	m, err := mesh.New([]math.Vec3{{}, {X: 1}, {Y: 0.5}}, []mesh.Face{{0, 1, 2}}, mesh.WithName("tri"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m))
	assert.Equal(t, "o tri\nv 0 0 0\nv 1 0 0\nv 0 0.5 0\nf 1 2 3\n", buf.String())
}

func TestOBJRoundTripWithNormals(t *testing.T) {
	up := math.UnitZ()
	m := square(t, mesh.WithNormals([]math.Vec3{up, up, up, up}))

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m))
	got, err := ReadOBJ(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Vertices(), got.Vertices())
	assert.Equal(t, m.Faces(), got.Faces())
	require.True(t, got.HasNormals())
	n, err := got.VertexNormal(2)
	require.NoError(t, err)
	assert.True(t, n.ApproxEqual(up))
}

func TestReadSTLBinary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, square(t)))
	assert.Equal(t, 80+4+2*50, buf.Len())

	m, err := ReadSTL(&buf)
	require.NoError(t, err)
	assert.Equal(t, "square", m.Name())
	assert.Equal(t, []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}, m.Vertices())
	assert.Equal(t, []mesh.Face{{0, 1, 2}, {0, 2, 3}}, m.Faces())
}

func TestReadSTLASCII(t *testing.T) {
	m, err := ReadSTL(strings.NewReader(wedgeSTL))
	require.NoError(t, err)

	assert.Equal(t, "wedge", m.Name())
	assert.Equal(t, []math.Vec3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}, m.Vertices())
	assert.Equal(t, []mesh.Face{{0, 1, 2}, {1, 3, 2}}, m.Faces())
	assert.Len(t, m.Edges(), 5)
}

func TestReadSTLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not stl", "hello world"},
		{"short facet", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid x\n"},
		{"bad vertex", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSTL(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadYAML(t *testing.T) {
	m, err := ReadYAML(strings.NewReader(triYAML))
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, 3, m.NumVertices())
	require.True(t, m.HasNormals())
	n, err := m.VertexNormal(0)
	require.NoError(t, err)
	assert.Equal(t, math.UnitZ(), n)
}

func TestReadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"unknown key", "colour: red\nvertices: []\nfaces: []\n", ErrMalformed},
		{"two coordinates", "vertices: [[0, 0]]\nfaces: []\n", ErrMalformed},
		{"bad face index", "vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]\nfaces: [[0, 1, 5]]\n", mesh.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	m := square(t)
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, m))

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Name(), got.Name())
	assert.Equal(t, m.Vertices(), got.Vertices())
	assert.Equal(t, m.Faces(), got.Faces())
	assert.False(t, got.HasNormals())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	m, err := Load(write("wedge.STL", wedgeSTL))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumFaces())

	// Without an "o" statement the file name is used.
	m, err = Load(write("plain.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "plain", m.Name())

	m, err = Load(write("tri.yml", triYAML), mesh.WithName("override"))
	require.NoError(t, err)
	assert.Equal(t, "override", m.Name())

	_, err = Load(write("model.ply", "ply\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write("broken.obj", "v 1 2\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	m := square(t)

	for _, name := range []string{"out.obj", "out.stl", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, m))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "square", got.Name())
			assert.Equal(t, m.Vertices(), got.Vertices())
		})
	}

	assert.ErrorIs(t, Save(filepath.Join(dir, "out.fbx"), m), ErrUnsupportedFormat)
}
