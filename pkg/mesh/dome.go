package mesh

import (
	"math"

	"github.com/Faultbox/accufoot/pkg/geometry"
)

// Dome builds a half-ellipsoid bump with its base circle in the z=0 plane and
// its apex at (0, 0, rz). The parameter grid spans u in [0, 2*pi] over
// `sections` samples and v in [0, pi/2] over `stacks` samples, endpoints
// included, so the seam column is duplicated and the mesh has exactly
// sections*stacks vertices and 2*(stacks-1)*(sections-1) triangles. Winding
// is consistent with outward-facing normals.
func Dome(rx, ry, rz float64, sections, stacks int) *TriMesh {
	if sections < 2 || stacks < 2 {
		return &TriMesh{}
	}

	m := &TriMesh{
		Vertices: make([]geometry.Vec3, 0, sections*stacks),
		Faces:    make([][3]uint32, 0, 2*(stacks-1)*(sections-1)),
	}

	for i := 0; i < stacks; i++ {
		v := math.Pi / 2 * float64(i) / float64(stacks-1)
		for j := 0; j < sections; j++ {
			u := 2 * math.Pi * float64(j) / float64(sections-1)
			m.Vertices = append(m.Vertices, geometry.Vec3{
				X: rx * math.Cos(u) * math.Sin(v),
				Y: ry * math.Sin(u) * math.Sin(v),
				Z: rz * math.Cos(v),
			})
		}
	}

	for i := 0; i < stacks-1; i++ {
		for j := 0; j < sections-1; j++ {
			p0 := uint32(i*sections + j)
			p1 := p0 + 1
			p2 := p0 + uint32(sections)
			p3 := p2 + 1
			m.Faces = append(m.Faces, [3]uint32{p0, p2, p1}, [3]uint32{p1, p2, p3})
		}
	}

	return m
}
