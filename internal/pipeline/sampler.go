package pipeline

import "github.com/Faultbox/accufoot/pkg/geometry"

// samplePoints walks a regular grid over the polygon's bounding box and
// returns the grid points inside the polygon, in row-major order (x outer,
// y inner). Both axes are half-open: the box's max edge is never sampled, so
// the candidate count per axis is determined by the box extent and step
// alone. The polygon's boundary rule (bottom/left in, top/right out) comes
// from geometry.Polygon.Contains.
func samplePoints(poly geometry.Polygon, step float64) []geometry.Point2D {
	if len(poly) < 3 || step <= 0 {
		return nil
	}

	box := poly.Bounds()
	var pts []geometry.Point2D
	for x := box.Min.X; x < box.Max.X; x += step {
		for y := box.Min.Y; y < box.Max.Y; y += step {
			p := geometry.Point2D{X: x, Y: y}
			if poly.Contains(p) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}
