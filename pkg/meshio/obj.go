package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// ReadOBJ parses Wavefront OBJ geometry. Only v, vn, f and o statements are
// used; texture coordinates, groups and materials are skipped. Face corners
// may be written as a, a/b, a//c or a/b/c, and negative indices count back
// from the most recent vertex.
//
// Normals are kept only when every face corner names the normal with the
// same index as its vertex, which is how WriteOBJ stores them.
func ReadOBJ(r io.Reader, opts ...mesh.Option) (*mesh.Mesh, error) {
	d, err := decodeOBJ(r)
	if err != nil {
		return nil, err
	}
	return d.build(opts)
}

func decodeOBJ(r io.Reader) (*decoded, error) {
	d := &decoded{}
	var normals []math.Vec3
	perVertex := true

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			d.vertices = append(d.vertices, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners", ErrMalformed, line)
			}
			face := make(mesh.Face, 0, len(fields)-1)
			for _, corner := range fields[1:] {
				vi, ni, err := parseCorner(corner, len(d.vertices), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
				}
				if ni != vi {
					perVertex = false
				}
				face = append(face, vi)
			}
			d.faces = append(d.faces, face)
		case "o":
			if len(fields) > 1 {
				d.name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}

	if perVertex && len(normals) == len(d.vertices) && len(d.faces) > 0 {
		d.normals = normals
	}
	return d, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	// A fourth (w) coordinate is allowed and ignored.
	if len(fields) < 3 || len(fields) > 4 {
		return math.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseCorner returns the zero-based vertex and normal indices of a face
// corner. The normal index is -1 when absent.
func parseCorner(corner string, numVertices, numNormals int) (vi, ni int, err error) {
	parts := strings.Split(corner, "/")
	if len(parts) > 3 {
		return 0, 0, fmt.Errorf("bad face corner %q", corner)
	}
	vi, err = resolveIndex(parts[0], numVertices)
	if err != nil {
		return 0, 0, err
	}
	ni = -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], numNormals)
		if err != nil {
			return 0, 0, err
		}
	}
	return vi, ni, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0 && count+n >= 0:
		return count + n, nil
	}
	return 0, fmt.Errorf("index %d out of range", n)
}

// WriteOBJ writes m as OBJ text. Supplied normals are written as vn lines
// paired one-to-one with the vertices.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	if m.Name() != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name())
	}
	for _, v := range m.Vertices() {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}

	withNormals := m.HasNormals()
	if withNormals {
		normals, err := m.VertexNormals()
		if err != nil {
			return err
		}
		for _, n := range normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
		}
	}

	for _, f := range m.Faces() {
		bw.WriteString("f")
		for _, i := range f {
			if withNormals {
				fmt.Fprintf(bw, " %d//%d", i+1, i+1)
			} else {
				fmt.Fprintf(bw, " %d", i+1)
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// formatFloat writes the shortest representation that parses back exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
