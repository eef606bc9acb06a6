package dxf

import (
	"fmt"
	"strings"
)

// RawEntity is one loosely-typed entity record as produced by a grammar
// parser: the entity type and layer plus a bag of geometry fields whose
// shapes vary by parser (named point maps, coordinate pairs, vertex
// lists). The Normalizer is the only consumer of the Fields bag.
type RawEntity struct {
	Type       string
	Layer      string
	ColorIndex *int
	Fields     map[string]any
}

// Parser tokenizes raw DXF text into loose entity records. Implementations
// may fail on malformed input; the pipeline handles retry and degradation.
type Parser interface {
	Parse(text string) ([]RawEntity, error)
}

// ParseError reports DXF text whose group-code structure is malformed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dxf: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GrammarParser is the built-in Parser: it walks the group-code pairs of
// the ENTITIES section and emits one RawEntity per entity record. It
// resolves nothing beyond the grammar; geometry stays loose.
type GrammarParser struct{}

func (GrammarParser) Parse(text string) ([]RawEntity, error) {
	tags, err := scanTags(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return collectEntities(tags), nil
}

// collectEntities extracts the entity records between the ENTITIES
// section header and its ENDSEC. POLYLINE vertex sub-records (VERTEX ..
// SEQEND) are folded into their owning polyline.
func collectEntities(tags []Tag) []RawEntity {
	var entities []RawEntity
	inSection := false

	i := 0
	for i < len(tags) {
		t := tags[i]
		if t.Code == 0 {
			switch strings.ToUpper(t.Value) {
			case "SECTION":
				if i+1 < len(tags) && tags[i+1].Code == 2 && strings.EqualFold(tags[i+1].Value, "ENTITIES") {
					inSection = true
					i += 2
					continue
				}
			case "ENDSEC":
				inSection = false
			case "EOF":
				return entities
			default:
				if inSection {
					name := strings.ToUpper(t.Value)
					body, next := entityBody(tags, i+1)
					switch name {
					case "VERTEX":
						if n := len(entities); n > 0 && entities[n-1].Type == "POLYLINE" {
							appendVertex(&entities[n-1], body)
						}
					case "SEQEND":
						// closes a POLYLINE vertex run, nothing to record
					default:
						entities = append(entities, buildRaw(name, body))
					}
					i = next
					continue
				}
			}
		}
		i++
	}
	return entities
}

// entityBody returns the tags belonging to the entity starting at from,
// i.e. everything up to the next code-0 tag.
func entityBody(tags []Tag, from int) ([]Tag, int) {
	i := from
	for i < len(tags) && tags[i].Code != 0 {
		i++
	}
	return tags[from:i], i
}

func buildRaw(name string, body []Tag) RawEntity {
	raw := RawEntity{Type: name, Fields: map[string]any{}}
	for _, t := range body {
		switch t.Code {
		case 8:
			raw.Layer = t.Value
		case 62:
			idx := t.AsInt()
			raw.ColorIndex = &idx
		}
	}

	switch name {
	case "LINE":
		setPoint(raw.Fields, "start", body, 10, 20)
		setPoint(raw.Fields, "end", body, 11, 21)
	case "LWPOLYLINE":
		raw.Fields["vertices"] = vertexPairs(body)
		for _, t := range body {
			if t.Code == 70 {
				raw.Fields["closed"] = t.AsInt()&1 == 1
			}
		}
	case "POLYLINE":
		raw.Fields["vertices"] = []any{}
		for _, t := range body {
			if t.Code == 70 {
				raw.Fields["closed"] = t.AsInt()&1 == 1
			}
		}
	case "CIRCLE", "ARC":
		setPoint(raw.Fields, "center", body, 10, 20)
		for _, t := range body {
			switch t.Code {
			case 40:
				raw.Fields["radius"] = t.AsFloat()
			case 50:
				raw.Fields["startAngle"] = t.AsFloat()
			case 51:
				raw.Fields["endAngle"] = t.AsFloat()
			}
		}
	case "TEXT", "MTEXT":
		setPoint(raw.Fields, "position", body, 10, 20)
		var parts []string
		for _, t := range body {
			switch t.Code {
			case 3: // MTEXT continuation chunks precede the final code-1 chunk
				parts = append(parts, t.Value)
			case 1:
				parts = append(parts, t.Value)
			case 40:
				raw.Fields["height"] = t.AsFloat()
			}
		}
		raw.Fields["text"] = strings.Join(parts, "")
	case "DIMENSION":
		setPoint(raw.Fields, "definingPoint", body, 10, 20)
		setPoint(raw.Fields, "middleOfText", body, 11, 21)
		for _, t := range body {
			if t.Code == 1 {
				raw.Fields["text"] = t.Value
			}
		}
	case "HATCH":
		raw.Fields["edges"] = hatchEdges(body)
	}
	return raw
}

func setPoint(fields map[string]any, key string, body []Tag, xCode, yCode int) {
	var x, y float64
	haveX, haveY := false, false
	for _, t := range body {
		switch t.Code {
		case xCode:
			x, haveX = t.AsFloat(), true
		case yCode:
			y, haveY = t.AsFloat(), true
		}
	}
	if haveX && haveY {
		fields[key] = map[string]any{"x": x, "y": y}
	}
}

// vertexPairs collects the 10/20 coordinate runs of an LWPOLYLINE in
// order. A 10 opens a vertex, the following 20 completes it.
func vertexPairs(body []Tag) []any {
	var vertices []any
	var x float64
	pending := false
	for _, t := range body {
		switch t.Code {
		case 10:
			x, pending = t.AsFloat(), true
		case 20:
			if pending {
				vertices = append(vertices, []float64{x, t.AsFloat()})
				pending = false
			}
		}
	}
	return vertices
}

func appendVertex(raw *RawEntity, body []Tag) {
	vertices, _ := raw.Fields["vertices"].([]any)
	var x, y float64
	haveX, haveY := false, false
	for _, t := range body {
		switch t.Code {
		case 10:
			x, haveX = t.AsFloat(), true
		case 20:
			y, haveY = t.AsFloat(), true
		}
	}
	if haveX && haveY {
		raw.Fields["vertices"] = append(vertices, []float64{x, y})
	}
}

// hatchEdges extracts boundary edges expressible as line segments: a
// 10/20 start followed by an 11/21 end. Arc and spline edge data is
// left behind; hatches render as outlines only.
func hatchEdges(body []Tag) []any {
	var edges []any
	var sx, sy, ex float64
	state := 0
	for _, t := range body {
		switch {
		case t.Code == 10:
			sx, state = t.AsFloat(), 1
		case t.Code == 20 && state == 1:
			sy, state = t.AsFloat(), 2
		case t.Code == 11 && state == 2:
			ex, state = t.AsFloat(), 3
		case t.Code == 21 && state == 3:
			edges = append(edges, map[string]any{
				"start": map[string]any{"x": sx, "y": sy},
				"end":   map[string]any{"x": ex, "y": t.AsFloat()},
			})
			state = 0
		}
	}
	return edges
}
