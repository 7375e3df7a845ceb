package pipeline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/accufoot/internal/zone"
	"github.com/Faultbox/accufoot/pkg/formats"
)

// GenerateOptions describes one end-to-end generation: load the sole and
// annotations, run the pipeline, export both artifacts.
type GenerateOptions struct {
	InputSTL    string
	Annotations string
	OutputPLY   string // the colorless STL twin derives from this path
	Zones       []string
	Params      Params
	Palette     zone.Palette
	Log         *zap.SugaredLogger
}

// GenerateResult is the outcome of Generate: the run result plus where the
// artifacts were written.
type GenerateResult struct {
	*Result
	PLYPath string
	STLPath string
	Elapsed time.Duration
}

// Generate runs the whole job. Failures follow the run taxonomy: missing or
// malformed inputs and export errors are fatal and leave no output artifact;
// per-zone and per-sample conditions only surface as warnings and metrics.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	start := time.Now()

	sole, err := formats.LoadSTL(opts.InputSTL)
	if err != nil {
		return nil, fmt.Errorf("loading sole model: %w", err)
	}
	zones, err := zone.Load(opts.Annotations)
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}

	p, err := New(sole, zones, opts.Palette, opts.Params, opts.Log)
	if err != nil {
		return nil, err
	}
	result, err := p.Run(opts.Zones)
	if err != nil {
		return nil, err
	}

	stlPath := strings.TrimSuffix(opts.OutputPLY, ".ply") + ".stl"
	if err := formats.SavePLY(opts.OutputPLY, result.Combined); err != nil {
		return nil, fmt.Errorf("exporting %s: %w", opts.OutputPLY, err)
	}
	if err := formats.SaveSTL(stlPath, result.Combined); err != nil {
		return nil, fmt.Errorf("exporting %s: %w", stlPath, err)
	}

	return &GenerateResult{
		Result:  result,
		PLYPath: opts.OutputPLY,
		STLPath: stlPath,
		Elapsed: time.Since(start),
	}, nil
}
