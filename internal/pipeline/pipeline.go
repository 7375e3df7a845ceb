// Package pipeline turns annotated 2D reflex zones into raised pressure
// bumps on a scanned sole surface and reports how well the mapping worked.
package pipeline

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/accufoot/internal/zone"
	"github.com/Faultbox/accufoot/pkg/geometry"
	"github.com/Faultbox/accufoot/pkg/mesh"
)

// ErrNoMatchingZones is returned when zone names were requested but none of
// them resolved to a known category. Requesting no zones at all is not an
// error: the run simply processes nothing.
var ErrNoMatchingZones = errors.New("none of the selected zones matched known categories")

// Params are the geometric constants of a run. All lengths are millimeters
// except Step, which is in annotation-image pixels.
type Params struct {
	Step          float64 // sampling grid step, pixels
	Margin        float64 // origin inset keeping bumps off the sole edge
	BumpRadius    float64 // dome base radius (rx = ry)
	BumpHeight    float64 // dome height (rz)
	Sections      int     // dome angular subdivisions
	Stacks        int     // dome elevation subdivisions
	RayClearance  float64 // ray origin height above the sole's top z
	SurfaceOffset float64 // bump base lift above the hit point
}

// DefaultParams returns the production constants.
func DefaultParams() Params {
	return Params{
		Step:          5.0,
		Margin:        10.0,
		BumpRadius:    2.5,
		BumpHeight:    4.0,
		Sections:      20,
		Stacks:        10,
		RayClearance:  10.0,
		SurfaceOffset: 0.01,
	}
}

// ZoneResult describes what happened to one processed zone, so callers can
// tell "zone skipped/empty" apart from "run failed".
type ZoneResult struct {
	Zone     string
	Bumps    int
	Warnings []string
}

// Result is the outcome of one run.
type Result struct {
	Combined *mesh.TriMesh
	Report   Report
	Zones    []ZoneResult // first-processed order
}

// Pipeline holds the immutable per-run context. The sole mesh and zone set
// are read-only throughout; a Pipeline may be shared by concurrent runs.
type Pipeline struct {
	sole    *mesh.TriMesh
	zones   *zone.Set
	palette zone.Palette
	params  Params
	mapper  Mapper
	topZ    float64
	log     *zap.SugaredLogger
}

// New builds the run context, deriving the coordinate transform from the
// sole bounds and the annotation image size. A sole with no x-y area is
// rejected here, before any processing.
func New(sole *mesh.TriMesh, zones *zone.Set, palette zone.Palette, params Params, log *zap.SugaredLogger) (*Pipeline, error) {
	bounds := sole.Bounds()
	mapper, err := NewMapper(bounds, zones.ImageWidth, zones.ImageHeight, params.Margin)
	if err != nil {
		return nil, err
	}
	if palette == nil {
		palette = zone.DefaultPalette()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		sole:    sole,
		zones:   zones,
		palette: palette,
		params:  params,
		mapper:  mapper,
		topZ:    bounds.Max.Z,
		log:     log,
	}, nil
}

// Mapper exposes the derived image-to-sole transform.
func (p *Pipeline) Mapper() Mapper {
	return p.mapper
}

// Run processes the requested zones and returns the combined mesh plus the
// metrics report. Unknown zone names are non-fatal warnings; if names were
// given and none matched, the run fails with ErrNoMatchingZones.
func (p *Pipeline) Run(requested []string) (*Result, error) {
	selected, unknown := p.zones.Resolve(requested)
	for _, name := range unknown {
		p.log.Warnf("zone %q not found in annotations", name)
	}
	if len(selected) == 0 && len(requested) > 0 {
		return nil, ErrNoMatchingZones
	}

	met := newMetrics()
	pieces := []*mesh.TriMesh{p.sole}
	zonePolys := make(map[string][]geometry.Polygon)
	results := make(map[string]*ZoneResult)
	var order []string

	for _, ann := range p.zones.Annotations {
		if !selected[ann.CategoryID] {
			continue
		}
		if ann.Zone == "" {
			p.log.Warnf("no category found for annotation %d", ann.ID)
			continue
		}

		res := results[ann.Zone]
		if res == nil {
			res = &ZoneResult{Zone: ann.Zone}
			results[ann.Zone] = res
			order = append(order, ann.Zone)
		}

		color := p.palette.Get(ann.Zone)
		p.log.Debugw("assigning bump color", "zone", ann.Zone, "color", color)
		zonePolys[ann.Zone] = append(zonePolys[ann.Zone], ann.Polygon)

		pts := samplePoints(ann.Polygon, p.params.Step)
		if len(pts) == 0 {
			res.Warnings = append(res.Warnings, "no valid points inside polygon")
			p.log.Warnf("no valid points found for zone %q", ann.Zone)
			continue
		}

		for _, pt := range pts {
			x3d, y3d := p.mapper.To3D(pt)
			loc, ok := p.locate(x3d, y3d, met)
			if !ok {
				continue // outside the solid's footprint, expected
			}
			posError := loc.DistanceXY(geometry.Vec3{X: x3d, Y: y3d})

			bump := mesh.Dome(p.params.BumpRadius, p.params.BumpRadius,
				p.params.BumpHeight, p.params.Sections, p.params.Stacks)
			bump.Translate(geometry.Vec3{X: x3d, Y: y3d, Z: loc.Z + p.params.SurfaceOffset})
			bump.PaintUniform(color)
			pieces = append(pieces, bump)

			met.recordBump(ann.Zone, loc, posError)
			res.Bumps++
			if met.total%200 == 0 {
				p.log.Infof("bumps placed: %d", met.total)
			}
		}
	}

	// A zone whose rays all missed placed nothing; that is a warning, not
	// a failure (its footprint may map outside the solid entirely).
	for _, name := range order {
		if res := results[name]; res.Bumps == 0 && len(res.Warnings) == 0 {
			res.Warnings = append(res.Warnings, "zone produced no bumps")
			p.log.Warnf("zone %q produced no bumps", name)
		}
	}

	combined := mesh.Concatenate(pieces...)

	insideAny := func(loc geometry.Vec3) bool {
		p2 := p.mapper.To2D(loc.X, loc.Y)
		for _, polys := range zonePolys {
			for _, poly := range polys {
				if poly.Contains(p2) {
					return true
				}
			}
		}
		return false
	}

	result := &Result{
		Combined: combined,
		Report:   met.finalize(p.params.Step, insideAny),
	}
	for _, name := range order {
		result.Zones = append(result.Zones, *results[name])
	}
	return result, nil
}

// locate fires a vertical ray down from above the sole at (x, y) and returns
// the highest intersection point. Picking the maximum z selects the top
// surface under the assumption of a single solid whose region of interest is
// its upper side; the heuristic is unsound for meshes with overhangs above
// the true top surface. Every call counts as a ray attempt.
func (p *Pipeline) locate(x, y float64, met *metrics) (geometry.Vec3, bool) {
	ray := mesh.Ray{
		Origin:    geometry.Vec3{X: x, Y: y, Z: p.topZ + p.params.RayClearance},
		Direction: geometry.Vec3{Z: -1},
	}
	hits := p.sole.IntersectAll(ray)
	met.recordAttempt(len(hits) > 0)
	if len(hits) == 0 {
		return geometry.Vec3{}, false
	}

	best := hits[0]
	for _, h := range hits[1:] {
		if h.Z > best.Z {
			best = h
		}
	}
	return best, true
}
