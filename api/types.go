// Package api holds the primitive types shared across the conversion
// pipeline: model-space geometry, page-space draw commands, colors and
// the paginated output document.
package api

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate. In DXF model space the unit is whatever the
// drawing uses (typically millimeters); in page space it is millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner,
// used for page regions.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the axis-aligned box enclosing a drawing's geometry in model
// space. Invariant: MinX <= MaxX and MinY <= MaxY.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// DefaultBounds is the box used when a drawing contains no resolvable
// points, so downstream scale math never sees a zero-sized or infinite box.
func DefaultBounds() Bounds {
	return Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
}

// NewBounds returns an empty accumulator primed so that the first
// Extend call sets all four edges.
func NewBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1),
		MaxX: math.Inf(-1),
		MinY: math.Inf(1),
		MaxY: math.Inf(-1),
	}
}

// Extend grows the box to include p.
func (b Bounds) Extend(p Point) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, p.X),
		MaxX: math.Max(b.MaxX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

// IsEmpty reports whether no point has been accumulated yet.
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) String() string {
	return fmt.Sprintf("[%.3f..%.3f, %.3f..%.3f]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// Color is an RGB triple for stroke and text commands.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the #rrggbb form used in SVG style strings.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	Black     = Color{0, 0, 0}
	Red       = Color{255, 0, 0}
	Yellow    = Color{204, 153, 0}
	Green     = Color{0, 153, 0}
	Cyan      = Color{0, 153, 153}
	Blue      = Color{0, 0, 255}
	Magenta   = Color{204, 0, 204}
	Gray      = Color{128, 128, 128}
	LightGray = Color{192, 192, 192}
)
