package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	gomath "math"
	"strings"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// ReadSTL parses binary or ASCII STL. Binary files are recognised by their
// size matching the triangle count in the header; anything else must be
// ASCII starting with "solid". Facet normals are ignored and vertices with
// identical coordinates are merged so faces share them.
func ReadSTL(r io.Reader, opts ...mesh.Option) (*mesh.Mesh, error) {
	d, err := decodeSTL(r)
	if err != nil {
		return nil, err
	}
	return d.build(opts)
}

func decodeSTL(r io.Reader) (*decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}

	if len(data) >= stlHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if uint64(len(data)) == stlHeaderSize+4+uint64(count)*stlTriangleSize {
			return decodeBinarySTL(data, int(count))
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return decodeASCIISTL(data)
	}
	return nil, fmt.Errorf("%w: neither binary nor ASCII STL", ErrMalformed)
}

func decodeBinarySTL(data []byte, count int) (*decoded, error) {
	w := newWelder()
	faces := make([]mesh.Face, 0, count)

	off := stlHeaderSize + 4
	for i := 0; i < count; i++ {
		// Skip the 12-byte facet normal.
		p := off + 12
		face := make(mesh.Face, 3)
		for k := 0; k < 3; k++ {
			v := math.Vec3{
				X: float64(gomath.Float32frombits(binary.LittleEndian.Uint32(data[p:]))),
				Y: float64(gomath.Float32frombits(binary.LittleEndian.Uint32(data[p+4:]))),
				Z: float64(gomath.Float32frombits(binary.LittleEndian.Uint32(data[p+8:]))),
			}
			if !v.IsFinite() {
				return nil, fmt.Errorf("%w: triangle %d has a non-finite vertex", ErrMalformed, i)
			}
			face[k] = w.add(v)
			p += 12
		}
		faces = append(faces, face)
		off += stlTriangleSize
	}

	return &decoded{name: binarySTLName(data[:stlHeaderSize]), vertices: w.vertices, faces: faces}, nil
}

// binarySTLName returns the printable part of the header, which many
// exporters fill with the object name.
func binarySTLName(header []byte) string {
	if i := bytes.IndexByte(header, 0); i >= 0 {
		header = header[:i]
	}
	name := strings.TrimSpace(string(header))
	if strings.HasPrefix(name, "solid") {
		// Some writers copy the ASCII keyword into binary files.
		name = strings.TrimSpace(strings.TrimPrefix(name, "solid"))
	}
	for _, r := range name {
		if r < 0x20 || r > 0x7e {
			return ""
		}
	}
	return name
}

func decodeASCIISTL(data []byte) (*decoded, error) {
	w := newWelder()
	d := &decoded{}
	var corners []int

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			d.name = strings.Join(fields[1:], " ")
		case "facet":
			corners = corners[:0]
		case "vertex":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			corners = append(corners, w.add(p))
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, line, len(corners))
			}
			d.faces = append(d.faces, mesh.Face{corners[0], corners[1], corners[2]})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}

	d.vertices = w.vertices
	return d, nil
}

// WriteSTL writes m as binary STL, fan-triangulating polygons. Coordinates
// are narrowed to float32 as the format requires.
func WriteSTL(w io.Writer, m *mesh.Mesh) error {
	tris := m.Triangles()

	var header [stlHeaderSize]byte
	copy(header[:], m.Name())
	buf := bytes.NewBuffer(make([]byte, 0, stlHeaderSize+4+len(tris)*stlTriangleSize))
	buf.Write(header[:])
	binary.Write(buf, binary.LittleEndian, uint32(len(tris)))

	for _, tri := range tris {
		n, err := tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0])).Normalize()
		if err != nil {
			n = math.Vec3{}
		}
		for _, v := range [4]math.Vec3{n, tri.V[0], tri.V[1], tri.V[2]} {
			binary.Write(buf, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}

	_, err := w.Write(buf.Bytes())
	return err
}
