package mesh

import (
	"math"

	"github.com/Faultbox/accufoot/pkg/geometry"
)

// rayEpsilon guards against division by a near-zero determinant and rejects
// hits at the ray origin.
const rayEpsilon = 1e-9

// Ray is a half-line in 3D space.
type Ray struct {
	Origin    geometry.Vec3
	Direction geometry.Vec3 // normalized
}

// IntersectAABB tests the ray against an axis-aligned bounding box using the
// slab method. It returns false when the ray cannot reach the box.
func (r Ray) IntersectAABB(box AABB) bool {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (bmin[axis] - origin[axis]) / dir[axis]
			t2 := (bmax[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
			return false
		}
	}

	return tmax >= tmin && tmax >= 0
}

// IntersectAll returns every intersection point of the ray with the mesh
// surface, in no particular order. Points on shared triangle edges may be
// reported once per incident triangle.
func (m *TriMesh) IntersectAll(r Ray) []geometry.Vec3 {
	if len(m.Faces) == 0 || !r.IntersectAABB(m.Bounds()) {
		return nil
	}

	var hits []geometry.Vec3
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		v1 := m.Vertices[f[1]]
		v2 := m.Vertices[f[2]]
		if t, ok := intersectTriangle(r, v0, v1, v2); ok {
			hits = append(hits, r.Origin.Add(r.Direction.Scale(t)))
		}
	}
	return hits
}

// intersectTriangle runs the Moeller-Trumbore test and returns the ray
// parameter t of the hit, if any. Rays parallel to the triangle plane and
// hits behind the origin report no intersection.
func intersectTriangle(r Ray, v0, v1, v2 geometry.Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det

	tv := r.Origin.Sub(v0)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tv.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}
