package pipeline

import (
	"errors"

	"github.com/Faultbox/accufoot/pkg/geometry"
	"github.com/Faultbox/accufoot/pkg/mesh"
)

// ErrDegenerateBounds is returned when the sole bounding box has no area in
// the x-y plane, leaving the image-to-sole transform undefined.
var ErrDegenerateBounds = errors.New("sole bounding box has zero area")

// Mapper is the linear transform from annotation image space (pixels, y
// growing downward) to the sole's x-y plane (millimeters, y growing upward).
// It is pure and stateless; one instance is derived per run.
type Mapper struct {
	OriginX, OriginY        float64
	XScale, YScale          float64
	ImageWidth, ImageHeight float64
}

// NewMapper derives the transform from the sole bounds and the annotation
// image dimensions. The margin shifts the origin inward so bumps stay off
// the sole's raw edge.
func NewMapper(bounds mesh.AABB, imgWidth, imgHeight, margin float64) (Mapper, error) {
	size := bounds.Size()
	if size.X <= 0 || size.Y <= 0 || imgWidth <= 0 || imgHeight <= 0 {
		return Mapper{}, ErrDegenerateBounds
	}
	return Mapper{
		OriginX:     bounds.Min.X + margin,
		OriginY:     bounds.Min.Y + margin,
		XScale:      size.X / imgWidth,
		YScale:      size.Y / imgHeight,
		ImageWidth:  imgWidth,
		ImageHeight: imgHeight,
	}, nil
}

// To3D maps an image-space point to sole-plane x, y. The y axis is inverted:
// image rows grow downward while the sole frame grows upward.
func (m Mapper) To3D(p geometry.Point2D) (x, y float64) {
	x = m.OriginX + p.X*m.XScale
	y = m.OriginY + (m.ImageHeight-p.Y)*m.YScale
	return x, y
}

// To2D is the inverse of To3D, projecting a sole-plane location back into
// image space. Used by the mapping-accuracy metric and round-trip checks.
func (m Mapper) To2D(x, y float64) geometry.Point2D {
	return geometry.Point2D{
		X: (x - m.OriginX) / m.XScale,
		Y: m.ImageHeight - (y-m.OriginY)/m.YScale,
	}
}
