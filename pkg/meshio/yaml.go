package meshio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// yamlMesh is the on-disk YAML layout:
//
//	name: cube
//	vertices: [[0, 0, 0], [1, 0, 0], ...]
//	faces: [[0, 2, 1], ...]
//	normals: [[0, 0, -1], ...] # optional, one per vertex
type yamlMesh struct {
	Name     string      `yaml:"name,omitempty"`
	Vertices [][]float64 `yaml:"vertices"`
	Faces    [][]int     `yaml:"faces"`
	Normals  [][]float64 `yaml:"normals,omitempty"`
}

// ReadYAML parses the YAML mesh layout. Unknown keys are rejected.
func ReadYAML(r io.Reader, opts ...mesh.Option) (*mesh.Mesh, error) {
	d, err := decodeYAML(r)
	if err != nil {
		return nil, err
	}
	return d.build(opts)
}

func decodeYAML(r io.Reader) (*decoded, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ym yamlMesh
	if err := dec.Decode(&ym); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := &decoded{name: ym.Name}
	var err error
	if d.vertices, err = toVec3s("vertices", ym.Vertices); err != nil {
		return nil, err
	}
	if ym.Normals != nil {
		if d.normals, err = toVec3s("normals", ym.Normals); err != nil {
			return nil, err
		}
	}
	d.faces = make([]mesh.Face, len(ym.Faces))
	for i, f := range ym.Faces {
		d.faces[i] = mesh.Face(f)
	}
	return d, nil
}

func toVec3s(key string, rows [][]float64) ([]math.Vec3, error) {
	out := make([]math.Vec3, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: %s[%d] has %d coordinates", ErrMalformed, key, i, len(row))
		}
		out[i] = math.Vec3{X: row[0], Y: row[1], Z: row[2]}
	}
	return out, nil
}

// WriteYAML writes m in the YAML mesh layout.
func WriteYAML(w io.Writer, m *mesh.Mesh) error {
	ym := yamlMesh{Name: m.Name()}
	for _, v := range m.Vertices() {
		ym.Vertices = append(ym.Vertices, []float64{v.X, v.Y, v.Z})
	}
	for _, f := range m.Faces() {
		ym.Faces = append(ym.Faces, []int(f))
	}
	if m.HasNormals() {
		normals, err := m.VertexNormals()
		if err != nil {
			return err
		}
		for _, n := range normals {
			ym.Normals = append(ym.Normals, []float64{n.X, n.Y, n.Z})
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&ym); err != nil {
		return fmt.Errorf("failed to encode mesh: %w", err)
	}
	return enc.Close()
}
