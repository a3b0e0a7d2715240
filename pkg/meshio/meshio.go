// Package meshio reads and writes meshes in Wavefront OBJ, STL and a small
// YAML format.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	ErrMalformed         = errors.New("malformed mesh data")
)

// Format identifies a mesh file format.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".stl":
		return FormatSTL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads the mesh at path, choosing the parser by extension. A mesh
// without a name of its own is named after the file.
func Load(path string, opts ...mesh.Option) (*mesh.Mesh, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh: %w", err)
	}
	defer f.Close()

	var d *decoded
	switch format {
	case FormatOBJ:
		d, err = decodeOBJ(f)
	case FormatSTL:
		d, err = decodeSTL(f)
	case FormatYAML:
		d, err = decodeYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.name == "" {
		base := filepath.Base(path)
		d.name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	m, err := d.build(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// decoded is the format-independent result of parsing a file.
type decoded struct {
	name     string
	vertices []math.Vec3
	faces    []mesh.Face
	normals  []math.Vec3
}

// build validates the data through mesh.New. Caller options come last so
// they override anything read from the file.
func (d *decoded) build(opts []mesh.Option) (*mesh.Mesh, error) {
	all := make([]mesh.Option, 0, len(opts)+2)
	if d.name != "" {
		all = append(all, mesh.WithName(d.name))
	}
	if d.normals != nil {
		all = append(all, mesh.WithNormals(d.normals))
	}
	all = append(all, opts...)
	return mesh.New(d.vertices, d.faces, all...)
}

// welder merges bit-identical vertex positions.
type welder struct {
	index    map[math.Vec3]int
	vertices []math.Vec3
}

func newWelder() *welder {
	return &welder{index: make(map[math.Vec3]int)}
}

func (w *welder) add(p math.Vec3) int {
	if i, ok := w.index[p]; ok {
		return i
	}
	i := len(w.vertices)
	w.index[p] = i
	w.vertices = append(w.vertices, p)
	return i
}

// Save writes m to path in the format named by its extension.
func Save(path string, m *mesh.Mesh) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch format {
	case FormatOBJ:
		return WriteOBJ(f, m)
	case FormatSTL:
		return WriteSTL(f, m)
	default:
		return WriteYAML(f, m)
	}
}
