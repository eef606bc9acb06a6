package render

import (
	"fmt"
	"math"

	"github.com/flanksource/commons/logger"

	"github.com/kapilmoond/dxfprint/api"
	"github.com/kapilmoond/dxfprint/dxf"
)

const (
	// DefaultArcSegments is the number of straight segments an arc is
	// sampled into.
	DefaultArcSegments = 20
	// DefaultMinTextSize is the page-space floor for text, in mm.
	// Renderers never emit unreadably small text.
	DefaultMinTextSize = 2.0
	// DefaultStrokeWidth is the page-space stroke width in mm.
	DefaultStrokeWidth = 0.25
)

// Renderer emits page-space draw commands for normalized entities using
// one shared transform. Zero-value knobs fall back to the defaults.
type Renderer struct {
	Transform   Transform
	ArcSegments int
	MinTextSize float64
	StrokeWidth float64
}

// NewRenderer returns a renderer with default tuning.
func NewRenderer(t Transform) *Renderer {
	return &Renderer{
		Transform:   t,
		ArcSegments: DefaultArcSegments,
		MinTextSize: DefaultMinTextSize,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// RenderAll renders every entity, skipping individual failures with a
// diagnostic. One bad entity never aborts the document.
func (r *Renderer) RenderAll(entities []dxf.Entity, diag *api.Diagnostics) []api.Command {
	var commands []api.Command
	for i, entity := range entities {
		cmds, err := r.Render(entity)
		if err != nil {
			diag.Skip(i, entityKind(entity), err.Error())
			logger.Warnf("skipping entity %d (%s): %v", i, entityKind(entity), err)
			continue
		}
		commands = append(commands, cmds...)
		diag.Rendered++
	}
	return commands
}

// Render emits the draw commands for one entity. Panics from unexpected
// geometry are recovered and returned as errors.
func (r *Renderer) Render(entity dxf.Entity) (cmds []api.Command, err error) {
	defer func() {
		if p := recover(); p != nil {
			cmds, err = nil, fmt.Errorf("render %s: %v", entityKind(entity), p)
		}
	}()

	cmds = r.renderEntity(entity)
	for _, c := range cmds {
		if !commandFinite(c) {
			return nil, fmt.Errorf("render %s: non-finite coordinates", entityKind(entity))
		}
	}
	return cmds, nil
}

func (r *Renderer) renderEntity(entity dxf.Entity) []api.Command {
	color := ColorFor(entity.Attributes())

	switch e := entity.(type) {
	case dxf.Line:
		return []api.Command{api.StrokeLine{
			From:  r.Transform.Apply(e.Start),
			To:    r.Transform.Apply(e.End),
			Color: color,
			Width: r.strokeWidth(),
		}}

	case dxf.Polyline:
		points := make([]api.Point, len(e.Vertices))
		for i, v := range e.Vertices {
			points[i] = r.Transform.Apply(v)
		}
		return []api.Command{api.StrokePolyline{
			Points: points,
			Closed: e.Closed,
			Color:  color,
			Width:  r.strokeWidth(),
		}}

	case dxf.Circle:
		return []api.Command{api.StrokeCircle{
			Center: r.Transform.Apply(e.Center),
			Radius: r.Transform.Distance(e.Radius),
			Color:  color,
			Width:  r.strokeWidth(),
		}}

	case dxf.Arc:
		return []api.Command{api.StrokePolyline{
			Points: r.sampleArc(e),
			Color:  color,
			Width:  r.strokeWidth(),
		}}

	case dxf.Text:
		return []api.Command{api.PlaceText{
			At:    r.Transform.Apply(e.Position),
			Text:  e.Content,
			Size:  r.textSize(e.Height),
			Color: color,
		}}

	case dxf.Dimension:
		return r.renderDimension(e, color)

	case dxf.Hatch:
		// Outline only, never filled: each boundary edge is a plain
		// stroked segment.
		cmds := make([]api.Command, 0, len(e.Edges))
		for _, edge := range e.Edges {
			cmds = append(cmds, api.StrokeLine{
				From:  r.Transform.Apply(edge.Start),
				To:    r.Transform.Apply(edge.End),
				Color: color,
				Width: r.strokeWidth(),
			})
		}
		return cmds
	}
	return nil
}

// sampleArc approximates an arc with equal angular steps. Angles are in
// degrees, counter-clockwise positive; an end angle behind the start is
// taken to wrap through 360.
func (r *Renderer) sampleArc(arc dxf.Arc) []api.Point {
	segments := r.ArcSegments
	if segments <= 0 {
		segments = DefaultArcSegments
	}

	start := arc.StartAngle
	end := arc.EndAngle
	if end <= start {
		end += 360
	}

	step := (end - start) / float64(segments)
	points := make([]api.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := (start + step*float64(i)) * math.Pi / 180
		points = append(points, r.Transform.Apply(api.Point{
			X: arc.Center.X + arc.Radius*math.Cos(angle),
			Y: arc.Center.Y + arc.Radius*math.Sin(angle),
		}))
	}
	return points
}

func (r *Renderer) renderDimension(dim dxf.Dimension, color api.Color) []api.Command {
	var cmds []api.Command

	anchor := r.Transform.Apply(dim.DefiningPoint)
	if dim.MiddleOfText != nil {
		middle := r.Transform.Apply(*dim.MiddleOfText)
		cmds = append(cmds, api.StrokeLine{
			From:  anchor,
			To:    middle,
			Color: color,
			Width: r.strokeWidth(),
		})
		anchor = middle
	}
	if dim.Label != "" {
		cmds = append(cmds, api.PlaceText{
			At:    anchor,
			Text:  dim.Label,
			Size:  r.minTextSize(),
			Color: color,
		})
	}
	return cmds
}

func (r *Renderer) textSize(modelHeight float64) float64 {
	return math.Max(r.Transform.Distance(modelHeight), r.minTextSize())
}

func (r *Renderer) minTextSize() float64 {
	if r.MinTextSize > 0 {
		return r.MinTextSize
	}
	return DefaultMinTextSize
}

func (r *Renderer) strokeWidth() float64 {
	if r.StrokeWidth > 0 {
		return r.StrokeWidth
	}
	return DefaultStrokeWidth
}

func commandFinite(c api.Command) bool {
	switch v := c.(type) {
	case api.StrokeLine:
		return pointFinite(v.From) && pointFinite(v.To)
	case api.StrokeCircle:
		return pointFinite(v.Center) && finite(v.Radius)
	case api.StrokePolyline:
		for _, p := range v.Points {
			if !pointFinite(p) {
				return false
			}
		}
		return true
	case api.PlaceText:
		return pointFinite(v.At) && finite(v.Size)
	}
	return true
}

func pointFinite(p api.Point) bool { return finite(p.X) && finite(p.Y) }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func entityKind(entity dxf.Entity) string {
	switch entity.(type) {
	case dxf.Line:
		return "LINE"
	case dxf.Polyline:
		return "POLYLINE"
	case dxf.Circle:
		return "CIRCLE"
	case dxf.Arc:
		return "ARC"
	case dxf.Text:
		return "TEXT"
	case dxf.Dimension:
		return "DIMENSION"
	case dxf.Hatch:
		return "HATCH"
	}
	return fmt.Sprintf("%T", entity)
}
