package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/Faultbox/accufoot/pkg/geometry"
	"github.com/Faultbox/accufoot/pkg/mesh"
)

// STL format errors.
var (
	ErrASCIISTL     = errors.New("ascii STL is not supported, re-export as binary")
	ErrTruncatedSTL = errors.New("truncated STL data")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // 4 * 12 bytes of floats + 2 attribute bytes
)

// ParseSTL decodes a binary little-endian STL solid into a triangle mesh.
// Vertices are not welded: each triangle contributes three vertices, matching
// the triangle-soup nature of the format.
func ParseSTL(data []byte) (*mesh.TriMesh, error) {
	if isASCIISTL(data) {
		return nil, ErrASCIISTL
	}
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTL
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	need := uint64(stlHeaderSize+4) + uint64(count)*stlTriangleSize
	if uint64(len(data)) < need {
		return nil, ErrTruncatedSTL
	}

	m := &mesh.TriMesh{
		Vertices: make([]geometry.Vec3, 0, 3*count),
		Faces:    make([][3]uint32, 0, count),
	}
	off := stlHeaderSize + 4
	for i := uint32(0); i < count; i++ {
		off += 12 // normal is recomputed on write, ignore the stored one
		base := uint32(len(m.Vertices))
		for v := 0; v < 3; v++ {
			m.Vertices = append(m.Vertices, geometry.Vec3{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))),
			})
			off += 12
		}
		off += 2 // attribute byte count
		m.Faces = append(m.Faces, [3]uint32{base, base + 1, base + 2})
	}
	return m, nil
}

// isASCIISTL detects the ASCII variant: a leading "solid" keyword plus at
// least one "facet". Binary exports often start with "solid" in the comment
// header, so the keyword alone is not enough.
func isASCIISTL(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("solid")) && bytes.Contains(data, []byte("facet"))
}

// LoadSTL reads and parses a binary STL file from disk.
func LoadSTL(path string) (*mesh.TriMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteSTL encodes the mesh as binary little-endian STL. Face normals are
// recomputed from the vertex winding; vertex colors are not representable in
// STL and are dropped.
func WriteSTL(w io.Writer, m *mesh.TriMesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "accufoot binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return err
	}

	var tri [stlTriangleSize]byte
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		v1 := m.Vertices[f[1]]
		v2 := m.Vertices[f[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		putVec3f(tri[0:], n)
		putVec3f(tri[12:], v0)
		putVec3f(tri[24:], v1)
		putVec3f(tri[36:], v2)
		tri[48], tri[49] = 0, 0
		if _, err := bw.Write(tri[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func putVec3f(dst []byte, v geometry.Vec3) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(float32(v.Z)))
}

// SaveSTL writes the mesh to path atomically: the data goes to a temp file in
// the same directory which is renamed over the target, so a failed export
// never leaves a half-written artifact.
func SaveSTL(path string, m *mesh.TriMesh) error {
	return saveAtomic(path, func(w io.Writer) error { return WriteSTL(w, m) })
}

// saveAtomic streams through fn into a temp file and renames it over path.
func saveAtomic(path string, fn func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".accufoot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
