package geometry

import "math"

// Point2D is a 2D point in annotation image space (pixels).
type Point2D struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned 2D bounding box.
type Rect struct {
	Min, Max Point2D
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Polygon is a closed 2D polygon given as an ordered vertex sequence.
// The closing edge from the last vertex back to the first is implicit.
type Polygon []Point2D

// Bounds returns the axis-aligned bounding box of the polygon.
// The zero Rect is returned for an empty polygon.
func (poly Polygon) Bounds() Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	r := Rect{Min: poly[0], Max: poly[0]}
	for _, p := range poly[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// Contains tests point containment using the even-odd ray crossing rule.
// For an axis-aligned polygon the bottom/left boundary counts as inside and
// the top/right boundary as outside, so adjacent polygons sharing an edge
// never both claim a boundary point.
func (poly Polygon) Contains(p Point2D) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := poly[i], poly[j]

		// Does a ray from p going right cross edge pi-pj?
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}
