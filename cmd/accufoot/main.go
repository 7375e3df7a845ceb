// accufoot places therapy bumps for selected reflexology zones onto a
// scanned sole model and exports the result as colored PLY plus STL.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Faultbox/accufoot/internal/config"
	"github.com/Faultbox/accufoot/internal/logger"
	"github.com/Faultbox/accufoot/internal/pipeline"
	"github.com/Faultbox/accufoot/internal/zone"
)

var (
	flagFoot   = flag.String("foot", "", "Foot side: left or right (required)")
	flagInput  = flag.String("input", "", "Input sole STL (default: the configured model for the foot)")
	flagOutput = flag.String("output", "", "Output PLY path (default: <basename>_<foot>.ply)")
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fatal(err)
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal(err)
	}
	defer logger.Sync()

	foot, err := cfg.Foot(*flagFoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: -foot is required and must be left or right")
		usage()
		os.Exit(1)
	}

	input := *flagInput
	if input == "" {
		input = foot.Model
	}
	output := *flagOutput
	if output == "" {
		output = fmt.Sprintf("%s_%s.ply", cfg.Output.Basename, strings.ToLower(*flagFoot))
	}

	palette := zone.DefaultPalette()
	if err := palette.Apply(cfg.Palette); err != nil {
		fatal(err)
	}

	res, err := pipeline.Generate(pipeline.GenerateOptions{
		InputSTL:    input,
		Annotations: foot.Annotations,
		OutputPLY:   output,
		Zones:       flag.Args(),
		Params:      cfg.Params(),
		Palette:     palette,
		Log:         logger.Sugar,
	})
	if err != nil {
		fatal(err)
	}

	for _, zr := range res.Zones {
		for _, warning := range zr.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: zone %s: %s\n", zr.Zone, warning)
		}
	}

	fmt.Println(res.Report.String())
	fmt.Printf("Wrote %s and %s in %s\n",
		res.PLYPath, res.STLPath, res.Elapsed.Round(time.Millisecond))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `accufoot - reflexology bump generator

Usage:
  accufoot -foot <left|right> [options] [ZONE ...]

Bumps are placed for the zones named on the command line, matched
case-insensitively against the annotation file. With no zones named,
only the bare sole is exported.

Options:`)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, `
Examples:
  accufoot -foot left HEART LIVER
  accufoot -foot right -input scan.stl -output custom.ply KIDNEY`)
}
