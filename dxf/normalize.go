package dxf

import (
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/kapilmoond/dxfprint/api"
)

// defaultTextHeight is the model-space fallback height for TEXT records
// with a missing or non-positive height.
const defaultTextHeight = 2.5

// Normalize maps loose parser records onto the Entity union. Records
// whose geometry cannot be resolved are dropped with a diagnostic;
// unsupported entity types are ignored with a diagnostic. Neither is an
// error: normalization always returns the usable subset.
func Normalize(records []RawEntity, diag *api.Diagnostics) []Entity {
	diag.TotalEntities = len(records)

	entities := make([]Entity, 0, len(records))
	for i, raw := range records {
		entity, reason := normalizeOne(raw)
		switch {
		case entity != nil:
			entities = append(entities, entity)
		case reason == "":
			diag.Ignore(i, raw.Type)
		default:
			diag.Drop(i, raw.Type, reason)
		}
	}

	diag.Normalized = len(entities)
	logger.Debugf("normalized %d/%d dxf entities (%d dropped, %d ignored)",
		len(entities), len(records), len(diag.Dropped), len(diag.Ignored))
	return entities
}

// normalizeOne returns the normalized entity, or nil with a reason for a
// drop. A nil entity with an empty reason marks an unsupported type.
func normalizeOne(raw RawEntity) (Entity, string) {
	common := Common{Layer: raw.Layer, ColorIndex: raw.ColorIndex}

	switch strings.ToUpper(raw.Type) {
	case "LINE":
		return normalizeLine(raw, common)
	case "POLYLINE", "LWPOLYLINE":
		return normalizePolyline(raw, common)
	case "CIRCLE":
		center, ok := fieldPoint(raw.Fields, "center", "centerPoint", "center_point")
		if !ok {
			return nil, "no center point"
		}
		radius, ok := fieldFloat(raw.Fields, "radius", "r")
		if !ok || radius <= 0 {
			return nil, "missing or non-positive radius"
		}
		return Circle{Common: common, Center: center, Radius: radius}, ""
	case "ARC":
		center, ok := fieldPoint(raw.Fields, "center", "centerPoint", "center_point")
		if !ok {
			return nil, "no center point"
		}
		radius, ok := fieldFloat(raw.Fields, "radius", "r")
		if !ok || radius <= 0 {
			return nil, "missing or non-positive radius"
		}
		start, okStart := fieldFloat(raw.Fields, "startAngle", "start_angle")
		end, okEnd := fieldFloat(raw.Fields, "endAngle", "end_angle")
		if !okStart || !okEnd {
			return nil, "missing start/end angle"
		}
		return Arc{Common: common, Center: center, Radius: radius, StartAngle: start, EndAngle: end}, ""
	case "TEXT", "MTEXT":
		position, ok := fieldPoint(raw.Fields, "position", "insertionPoint", "insertion_point", "startPoint")
		if !ok {
			return nil, "no position"
		}
		content, ok := fieldString(raw.Fields, "text", "value", "string")
		if !ok || content == "" {
			return nil, "empty text"
		}
		height, ok := fieldFloat(raw.Fields, "height", "textHeight", "text_height")
		if !ok || height <= 0 {
			height = defaultTextHeight
		}
		return Text{Common: common, Position: position, Content: content, Height: height}, ""
	case "DIMENSION":
		defining, ok := fieldPoint(raw.Fields, "definingPoint", "defining_point", "anchor")
		if !ok {
			return nil, "no defining point"
		}
		dim := Dimension{Common: common, DefiningPoint: defining}
		if middle, ok := fieldPoint(raw.Fields, "middleOfText", "middle_of_text", "textMidpoint"); ok {
			dim.MiddleOfText = &middle
		}
		dim.Label, _ = fieldString(raw.Fields, "text", "label")
		return dim, ""
	case "HATCH":
		edges := hatchBoundary(raw.Fields)
		if len(edges) == 0 {
			return nil, "no line-segment boundary edges"
		}
		return Hatch{Common: common, Edges: edges}, ""
	default:
		return nil, ""
	}
}

func normalizeLine(raw RawEntity, common Common) (Entity, string) {
	start, okStart := fieldPoint(raw.Fields, "start", "startPoint", "start_point", "from")
	end, okEnd := fieldPoint(raw.Fields, "end", "endPoint", "end_point", "to")
	if okStart && okEnd {
		return Line{Common: common, Start: start, End: end}, ""
	}
	// Some parsers hand a LINE back as a generic two-vertex list.
	if vertices := fieldVertices(raw.Fields); len(vertices) >= 2 {
		return Line{Common: common, Start: vertices[0], End: vertices[1]}, ""
	}
	return nil, "no resolvable start/end pair"
}

func normalizePolyline(raw RawEntity, common Common) (Entity, string) {
	vertices := fieldVertices(raw.Fields)
	if len(vertices) < 2 {
		return nil, "fewer than 2 vertices"
	}
	closed, _ := fieldBool(raw.Fields, "closed", "isClosed", "is_closed")
	return Polyline{Common: common, Vertices: vertices, Closed: closed}, ""
}

func hatchBoundary(fields map[string]any) []Edge {
	var edges []Edge
	for _, name := range []string{"edges", "boundary", "boundaries"} {
		list, ok := fields[name].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			edge, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := edge["type"].(string); ok && !strings.EqualFold(t, "line") {
				continue // arc/spline boundary edges are not rendered
			}
			start, okStart := coercePoint(edge["start"])
			end, okEnd := coercePoint(edge["end"])
			if okStart && okEnd {
				edges = append(edges, Edge{Start: start, End: end})
			}
		}
		if len(edges) > 0 {
			break
		}
	}
	return edges
}

// fieldPoint resolves a point stored under any of the given aliases.
func fieldPoint(fields map[string]any, names ...string) (api.Point, bool) {
	for _, name := range names {
		if v, ok := fields[name]; ok {
			if p, ok := coercePoint(v); ok {
				return p, true
			}
		}
	}
	return api.Point{}, false
}

// coercePoint accepts the point shapes seen across parsers: an {x,y}
// map, a coordinate slice, or an already-typed api.Point.
func coercePoint(v any) (api.Point, bool) {
	switch p := v.(type) {
	case api.Point:
		return p, true
	case map[string]any:
		x, okX := coerceFloat(firstOf(p, "x", "X"))
		y, okY := coerceFloat(firstOf(p, "y", "Y"))
		if okX && okY {
			return api.Point{X: x, Y: y}, true
		}
	case []float64:
		if len(p) >= 2 {
			return api.Point{X: p[0], Y: p[1]}, true
		}
	case []any:
		if len(p) >= 2 {
			x, okX := coerceFloat(p[0])
			y, okY := coerceFloat(p[1])
			if okX && okY {
				return api.Point{X: x, Y: y}, true
			}
		}
	}
	return api.Point{}, false
}

func fieldVertices(fields map[string]any) []api.Point {
	for _, name := range []string{"vertices", "points"} {
		list, ok := fields[name]
		if !ok {
			continue
		}
		switch items := list.(type) {
		case []api.Point:
			return items
		case []any:
			points := make([]api.Point, 0, len(items))
			for _, item := range items {
				if p, ok := coercePoint(item); ok {
					points = append(points, p)
				}
			}
			if len(points) > 0 {
				return points
			}
		}
	}
	return nil
}

func fieldFloat(fields map[string]any, names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := fields[name]; ok {
			if f, ok := coerceFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func fieldString(fields map[string]any, names ...string) (string, bool) {
	for _, name := range names {
		if s, ok := fields[name].(string); ok {
			return s, true
		}
	}
	return "", false
}

func fieldBool(fields map[string]any, names ...string) (bool, bool) {
	for _, name := range names {
		if b, ok := fields[name].(bool); ok {
			return b, true
		}
	}
	return false, false
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
