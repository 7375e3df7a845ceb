package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/accufoot/pkg/geometry"
)

// metrics accumulates per-event counters and sample sequences while the run
// progresses. Reductions happen once, in finalize.
type metrics struct {
	attempts  int
	successes int

	posErrors  []float64
	locations  []geometry.Vec3
	zoneCounts map[string]int
	total      int
}

func newMetrics() *metrics {
	return &metrics{zoneCounts: make(map[string]int)}
}

// recordAttempt counts one ray cast. Every cast counts, hit or miss.
func (m *metrics) recordAttempt(hit bool) {
	m.attempts++
	if hit {
		m.successes++
	}
}

// recordBump counts one placed bump with its surface location and the planar
// distance between the expected mapped position and the actual hit.
func (m *metrics) recordBump(zone string, loc geometry.Vec3, posError float64) {
	m.total++
	m.zoneCounts[zone]++
	m.locations = append(m.locations, loc)
	m.posErrors = append(m.posErrors, posError)
}

// Report is the immutable end-of-run metrics summary.
type Report struct {
	RayAttempts  int
	RaySuccesses int
	SuccessRate  float64 // percent

	MeanPositionalError float64 // mm
	StdPositionalError  float64

	MappingAccuracy float64 // percent of bumps reprojecting into any zone

	ZoneCounts map[string]int // non-zero entries only
	TotalBumps int

	MeanSpacing float64 // mm, nearest-neighbor
	StdSpacing  float64
}

// finalize reduces the accumulated samples into a Report. step is the
// sampling step used as the spacing default when fewer than two bumps exist;
// insideAny reports whether a bump location reprojects into any processed
// zone polygon.
func (m *metrics) finalize(step float64, insideAny func(geometry.Vec3) bool) Report {
	rep := Report{
		RayAttempts:  m.attempts,
		RaySuccesses: m.successes,
		TotalBumps:   m.total,
		ZoneCounts:   make(map[string]int),
	}
	for zone, n := range m.zoneCounts {
		if n > 0 {
			rep.ZoneCounts[zone] = n
		}
	}

	if m.attempts > 0 {
		rep.SuccessRate = float64(m.successes) / float64(m.attempts) * 100
	}
	if len(m.posErrors) > 0 {
		rep.MeanPositionalError = stat.Mean(m.posErrors, nil)
		rep.StdPositionalError = stat.PopStdDev(m.posErrors, nil)
	}

	spacing := nearestNeighborDistances(m.locations)
	if len(spacing) > 0 {
		rep.MeanSpacing = stat.Mean(spacing, nil)
		rep.StdSpacing = stat.PopStdDev(spacing, nil)
	} else {
		rep.MeanSpacing = step
	}

	if m.total > 0 && insideAny != nil {
		correct := 0
		for _, loc := range m.locations {
			if insideAny(loc) {
				correct++
			}
		}
		rep.MappingAccuracy = float64(correct) / float64(m.total) * 100
	}

	return rep
}

// nearestNeighborDistances computes each bump's distance to its nearest
// distinct neighbor, brute force over all pairs. O(n^2), acceptable for the
// bump counts this domain produces; a spatial index would have to preserve
// these exact values.
func nearestNeighborDistances(locations []geometry.Vec3) []float64 {
	if len(locations) < 2 {
		return nil
	}
	out := make([]float64, 0, len(locations))
	for i := range locations {
		min := math.Inf(1)
		for j := range locations {
			if i == j {
				continue
			}
			d := locations[i].Distance(locations[j])
			if d > 0 && d < min {
				min = d
			}
		}
		if !math.IsInf(min, 1) {
			out = append(out, min)
		}
	}
	return out
}

// String renders the human-readable run summary.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("Quantitative Metrics:\n")
	fmt.Fprintf(&b, "  Ray-Casting Success Rate: %.2f%%\n", r.SuccessRate)
	fmt.Fprintf(&b, "  Mean Positional Error: %.2f ± %.2f mm\n",
		r.MeanPositionalError, r.StdPositionalError)
	fmt.Fprintf(&b, "  Mapping Accuracy: %.2f%%\n", r.MappingAccuracy)
	fmt.Fprintf(&b, "  Bump Counts per Zone: %s\n", formatZoneCounts(r.ZoneCounts))
	fmt.Fprintf(&b, "  Total Bumps: %d\n", r.TotalBumps)
	fmt.Fprintf(&b, "  Average Bump Spacing: %.2f ± %.2f mm", r.MeanSpacing, r.StdSpacing)
	return b.String()
}

func formatZoneCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", name, counts[name])
	}
	b.WriteByte('}')
	return b.String()
}
