package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Faultbox/accufoot/pkg/mesh"
)

// WritePLY encodes the mesh as binary little-endian PLY 1.0 with per-vertex
// RGBA colors. A mesh without a color array gets mesh.DefaultColor on every
// vertex so the vertex element layout stays fixed.
func WritePLY(w io.Writer, m *mesh.TriMesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format binary_little_endian 1.0")
	fmt.Fprintln(bw, "comment generated by accufoot")
	fmt.Fprintf(bw, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintln(bw, "property uchar alpha")
	fmt.Fprintf(bw, "element face %d\n", len(m.Faces))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	var vbuf [16]byte
	for i, v := range m.Vertices {
		binary.LittleEndian.PutUint32(vbuf[0:], math.Float32bits(float32(v.X)))
		binary.LittleEndian.PutUint32(vbuf[4:], math.Float32bits(float32(v.Y)))
		binary.LittleEndian.PutUint32(vbuf[8:], math.Float32bits(float32(v.Z)))
		c := mesh.DefaultColor
		if m.Colors != nil {
			c = m.Colors[i]
		}
		vbuf[12], vbuf[13], vbuf[14], vbuf[15] = c.R, c.G, c.B, c.A
		if _, err := bw.Write(vbuf[:]); err != nil {
			return err
		}
	}

	var fbuf [13]byte
	fbuf[0] = 3
	for _, f := range m.Faces {
		binary.LittleEndian.PutUint32(fbuf[1:], f[0])
		binary.LittleEndian.PutUint32(fbuf[5:], f[1])
		binary.LittleEndian.PutUint32(fbuf[9:], f[2])
		if _, err := bw.Write(fbuf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SavePLY writes the mesh to path atomically, like SaveSTL.
func SavePLY(path string, m *mesh.TriMesh) error {
	return saveAtomic(path, func(w io.Writer) error { return WritePLY(w, m) })
}
