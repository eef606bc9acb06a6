package dxf

import (
	"github.com/samber/lo"

	"github.com/kapilmoond/dxfprint/api"
)

// ComputeBounds reduces the extremal points of every entity to one
// axis-aligned box. When no entity contributes a point the default box
// is returned so scale derivation never divides by a degenerate extent.
func ComputeBounds(entities []Entity) api.Bounds {
	points := lo.FlatMap(entities, func(e Entity, _ int) []api.Point {
		return extremalPoints(e)
	})
	if len(points) == 0 {
		return api.DefaultBounds()
	}

	bounds := api.NewBounds()
	for _, p := range points {
		bounds = bounds.Extend(p)
	}
	return bounds
}

// extremalPoints returns the points that bound an entity. Circles and
// arcs contribute the corners of center±radius; for arcs that box
// over-approximates, which is safe since an arc never leaves its
// circle's box. Text and dimensions contribute anchors only; text
// extents are not measured.
func extremalPoints(e Entity) []api.Point {
	switch v := e.(type) {
	case Line:
		return []api.Point{v.Start, v.End}
	case Polyline:
		return v.Vertices
	case Circle:
		return radiusBox(v.Center, v.Radius)
	case Arc:
		return radiusBox(v.Center, v.Radius)
	case Text:
		return []api.Point{v.Position}
	case Dimension:
		points := []api.Point{v.DefiningPoint}
		if v.MiddleOfText != nil {
			points = append(points, *v.MiddleOfText)
		}
		return points
	case Hatch:
		return lo.FlatMap(v.Edges, func(edge Edge, _ int) []api.Point {
			return []api.Point{edge.Start, edge.End}
		})
	}
	return nil
}

func radiusBox(center api.Point, radius float64) []api.Point {
	return []api.Point{
		{X: center.X - radius, Y: center.Y - radius},
		{X: center.X + radius, Y: center.Y + radius},
	}
}
