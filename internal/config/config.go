// Package config handles tool configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/Faultbox/accufoot/internal/pipeline"
)

// Config holds all generator settings.
type Config struct {
	Feet     FeetConfig        `yaml:"feet"`
	Pipeline PipelineConfig    `yaml:"pipeline"`
	Output   OutputConfig      `yaml:"output"`
	Server   ServerConfig      `yaml:"server"`
	Palette  map[string]string `yaml:"palette"` // zone name -> "#RRGGBB" override
	Logging  LoggingConfig     `yaml:"logging"`
}

// FeetConfig holds the per-foot input file pairs.
type FeetConfig struct {
	Left  FootConfig `yaml:"left"`
	Right FootConfig `yaml:"right"`
}

// FootConfig names the scanned sole model and its annotation file.
type FootConfig struct {
	Model       string `yaml:"model"`
	Annotations string `yaml:"annotations"`
}

// PipelineConfig holds bump placement parameters in millimeters,
// except Step which is in reference-image pixels.
type PipelineConfig struct {
	Step         float64 `yaml:"step"`
	Margin       float64 `yaml:"margin"`
	BumpRadius   float64 `yaml:"bump_radius"`
	BumpHeight   float64 `yaml:"bump_height"`
	Sections     int     `yaml:"sections"`
	Stacks       int     `yaml:"stacks"`
	RayClearance float64 `yaml:"ray_clearance"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Basename string `yaml:"basename"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Feet: FeetConfig{
			Left: FootConfig{
				Model:       "Shoe_Sole_UK_8_Left.stl",
				Annotations: "Left_reflexology_zones.json",
			},
			Right: FootConfig{
				Model:       "Shoe_Sole_UK_8_Right.stl",
				Annotations: "Right_reflexology_zones.json",
			},
		},
		Pipeline: PipelineConfig{
			Step:         5,
			Margin:       10,
			BumpRadius:   2.5,
			BumpHeight:   4,
			Sections:     20,
			Stacks:       10,
			RayClearance: 10,
		},
		Output: OutputConfig{
			Dir:      "models",
			Basename: "sole_with_spikes",
		},
		Server: ServerConfig{
			Addr: ":5000",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Foot returns the input pair for "left" or "right", case-insensitively.
func (c *Config) Foot(name string) (FootConfig, error) {
	switch strings.ToLower(name) {
	case "left":
		return c.Feet.Left, nil
	case "right":
		return c.Feet.Right, nil
	default:
		return FootConfig{}, fmt.Errorf("unknown foot %q, want left or right", name)
	}
}

// Params converts the pipeline section into runtime parameters, filling
// anything unset from the built-in defaults.
func (c *Config) Params() pipeline.Params {
	p := pipeline.DefaultParams()
	if c.Pipeline.Step > 0 {
		p.Step = c.Pipeline.Step
	}
	if c.Pipeline.Margin > 0 {
		p.Margin = c.Pipeline.Margin
	}
	if c.Pipeline.BumpRadius > 0 {
		p.BumpRadius = c.Pipeline.BumpRadius
	}
	if c.Pipeline.BumpHeight > 0 {
		p.BumpHeight = c.Pipeline.BumpHeight
	}
	if c.Pipeline.Sections > 1 {
		p.Sections = c.Pipeline.Sections
	}
	if c.Pipeline.Stacks > 1 {
		p.Stacks = c.Pipeline.Stacks
	}
	if c.Pipeline.RayClearance > 0 {
		p.RayClearance = c.Pipeline.RayClearance
	}
	return p
}
