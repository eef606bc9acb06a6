package dxfprint

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kapilmoond/dxfprint/render"
)

// Options are the tunable parameters of the conversion pipeline. The
// scale knobs are empirically chosen; treat them as configuration.
type Options struct {
	Scale       render.ScaleConfig `yaml:"scale"`
	ArcSegments int                `yaml:"arc_segments"`
	MinTextSize float64            `yaml:"min_text_size"`
	StrokeWidth float64            `yaml:"stroke_width"`
	Debug       bool               `yaml:"debug"`
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		Scale:       render.DefaultScaleConfig(),
		ArcSegments: render.DefaultArcSegments,
		MinTextSize: render.DefaultMinTextSize,
		StrokeWidth: render.DefaultStrokeWidth,
	}
}

// BindFlags registers the render tuning knobs on a flag set, using the
// current values as defaults. Flag values override anything loaded from
// an options file.
func (o *Options) BindFlags(flags *pflag.FlagSet) {
	flags.Float64Var(&o.Scale.SafetyFactor, "safety-factor", o.Scale.SafetyFactor, "whitespace factor applied to the fitted scale")
	flags.IntVar(&o.ArcSegments, "arc-segments", o.ArcSegments, "straight segments per rendered arc")
	flags.Float64Var(&o.MinTextSize, "min-text-size", o.MinTextSize, "minimum rendered text size in mm")
	flags.Float64Var(&o.StrokeWidth, "stroke-width", o.StrokeWidth, "stroke width in mm")
	flags.BoolVar(&o.Debug, "debug", o.Debug, "enable the PDF layout grid")
}

// LoadOptions reads a YAML options file over the defaults, so a file
// only needs to name the knobs it changes.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return opts, nil
}
