package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/accufoot/pkg/geometry"
	"github.com/Faultbox/accufoot/pkg/mesh"
)

func testBounds() mesh.AABB {
	return mesh.AABB{Max: geometry.Vec3{X: 100, Y: 100, Z: 5}}
}

func TestNewMapperDegenerate(t *testing.T) {
	flat := mesh.AABB{Max: geometry.Vec3{X: 100, Y: 0, Z: 5}}
	if _, err := NewMapper(flat, 100, 100, 10); !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("zero-area bounds: err = %v, want ErrDegenerateBounds", err)
	}
	if _, err := NewMapper(testBounds(), 0, 100, 10); !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("zero image width: err = %v, want ErrDegenerateBounds", err)
	}
}

func TestMapperTo3D(t *testing.T) {
	m, err := NewMapper(testBounds(), 100, 100, 10)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}

	// Image origin maps to the margin-inset corner; the y axis flips.
	x, y := m.To3D(geometry.Point2D{X: 0, Y: 0})
	if x != 10 || y != 110 {
		t.Errorf("To3D(0,0) = (%v, %v), want (10, 110)", x, y)
	}

	x, y = m.To3D(geometry.Point2D{X: 30, Y: 40})
	if x != 40 || y != 70 {
		t.Errorf("To3D(30,40) = (%v, %v), want (40, 70)", x, y)
	}
}

func TestMapperScale(t *testing.T) {
	// Non-square sole over a non-square image exercises both scale factors.
	b := mesh.AABB{Max: geometry.Vec3{X: 200, Y: 50, Z: 5}}
	m, err := NewMapper(b, 400, 100, 10)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	if m.XScale != 0.5 || m.YScale != 0.5 {
		t.Errorf("scales = %v/%v, want 0.5/0.5", m.XScale, m.YScale)
	}
}

func TestMapperRoundTrip(t *testing.T) {
	b := mesh.AABB{
		Min: geometry.Vec3{X: -12.5, Y: 3.25, Z: 0},
		Max: geometry.Vec3{X: 87.5, Y: 253.25, Z: 22},
	}
	m, err := NewMapper(b, 640, 480, 10)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}

	points := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 640, Y: 480}, {X: 123.5, Y: 456.25}, {X: 17, Y: 333},
	}
	for _, p := range points {
		x, y := m.To3D(p)
		back := m.To2D(x, y)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip %v -> (%v,%v) -> %v", p, x, y, back)
		}
	}
}
