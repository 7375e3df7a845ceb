// Package mesh holds the triangle mesh container shared by the scanned sole,
// the synthesized bumps and the export writers.
package mesh

import "github.com/Faultbox/accufoot/pkg/geometry"

// Color is an RGBA vertex color.
type Color struct {
	R, G, B, A uint8
}

// DefaultColor is the neutral gray applied to vertices without an assigned
// zone color (the sole itself, and any unmapped zone).
var DefaultColor = Color{128, 128, 128, 255}

// TriMesh is an indexed triangle mesh. Colors is either nil (no vertex
// colors) or exactly one entry per vertex.
type TriMesh struct {
	Vertices []geometry.Vec3
	Faces    [][3]uint32
	Colors   []Color
}

// VertexCount returns the number of vertices.
func (m *TriMesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *TriMesh) TriangleCount() int {
	return len(m.Faces)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max geometry.Vec3
}

// Size returns the extent per axis.
func (b AABB) Size() geometry.Vec3 {
	return b.Max.Sub(b.Min)
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// The zero AABB is returned for an empty mesh.
func (m *TriMesh) Bounds() AABB {
	if len(m.Vertices) == 0 {
		return AABB{}
	}
	b := AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		if v.X < b.Min.X {
			b.Min.X = v.X
		}
		if v.Y < b.Min.Y {
			b.Min.Y = v.Y
		}
		if v.Z < b.Min.Z {
			b.Min.Z = v.Z
		}
		if v.X > b.Max.X {
			b.Max.X = v.X
		}
		if v.Y > b.Max.Y {
			b.Max.Y = v.Y
		}
		if v.Z > b.Max.Z {
			b.Max.Z = v.Z
		}
	}
	return b
}

// Translate moves every vertex by delta in place.
func (m *TriMesh) Translate(delta geometry.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(delta)
	}
}

// PaintUniform assigns the same color to every vertex.
func (m *TriMesh) PaintUniform(c Color) {
	m.Colors = make([]Color, len(m.Vertices))
	for i := range m.Colors {
		m.Colors[i] = c
	}
}

// Concatenate merges the given meshes into a single mesh in order, without
// deduplicating or welding shared vertices. Pieces without vertex colors get
// DefaultColor so the combined color array stays total.
func Concatenate(pieces ...*TriMesh) *TriMesh {
	var verts, faces int
	for _, p := range pieces {
		verts += len(p.Vertices)
		faces += len(p.Faces)
	}

	out := &TriMesh{
		Vertices: make([]geometry.Vec3, 0, verts),
		Faces:    make([][3]uint32, 0, faces),
		Colors:   make([]Color, 0, verts),
	}
	for _, p := range pieces {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, f := range p.Faces {
			out.Faces = append(out.Faces, [3]uint32{f[0] + base, f[1] + base, f[2] + base})
		}
		if p.Colors != nil {
			out.Colors = append(out.Colors, p.Colors...)
		} else {
			for range p.Vertices {
				out.Colors = append(out.Colors, DefaultColor)
			}
		}
	}
	return out
}
