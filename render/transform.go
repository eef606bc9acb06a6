// Package render turns normalized DXF entities into page-space draw
// commands: scale-to-fit transform derivation, per-entity-type
// rendering, color resolution and page composition.
package render

import (
	"math"

	"github.com/kapilmoond/dxfprint/api"
)

// ScaleConfig holds the empirically tuned scale-to-fit knobs. They are
// configuration, not invariants; callers may override any of them.
type ScaleConfig struct {
	// SafetyFactor shrinks the fitted scale to guarantee whitespace
	// around the drawing. Must be < 1.
	SafetyFactor float64 `yaml:"safety_factor"`
	// MinScale and MaxScale clamp the fitted scale so extremely large
	// or small drawings still produce sane output.
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// DefaultScaleConfig returns the tuning used by the print renderer.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{SafetyFactor: 0.9, MinScale: 0.001, MaxScale: 1000}
}

// epsilon guards the fit division against zero-extent bounds.
const epsilon = 1e-9

// Transform maps model-space points into the page drawing area: a
// uniform scale plus centering offsets, with the Y axis flipped (DXF
// model space is Y-up, page space is Y-down). It is derived once per
// conversion and shared by every entity render call.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	bounds api.Bounds
}

// DeriveTransform computes the uniform scale-to-fit transform that
// centers bounds inside area.
func DeriveTransform(bounds api.Bounds, area api.Rect, cfg ScaleConfig) Transform {
	scaleX := area.Width / math.Max(bounds.Width(), epsilon)
	scaleY := area.Height / math.Max(bounds.Height(), epsilon)

	scale := math.Min(scaleX, scaleY) * cfg.SafetyFactor
	scale = math.Min(math.Max(scale, cfg.MinScale), cfg.MaxScale)

	return Transform{
		Scale:   scale,
		OffsetX: area.X + (area.Width-bounds.Width()*scale)/2,
		OffsetY: area.Y + (area.Height-bounds.Height()*scale)/2,
		bounds:  bounds,
	}
}

// Apply maps a model-space point to page space. The Y flip lives here
// and only here: bounds.MaxY maps to the top of the drawing area.
func (t Transform) Apply(p api.Point) api.Point {
	return api.Point{
		X: t.OffsetX + (p.X-t.bounds.MinX)*t.Scale,
		Y: t.OffsetY + (t.bounds.MaxY-p.Y)*t.Scale,
	}
}

// Distance scales a model-space length (radii, text heights). The
// transform is isotropic, so lengths scale by the scalar alone.
func (t Transform) Distance(d float64) float64 {
	return d * t.Scale
}

// Bounds returns the model-space box the transform was derived from.
func (t Transform) Bounds() api.Bounds { return t.bounds }
