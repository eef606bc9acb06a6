package render

import (
	"strings"

	"github.com/kapilmoond/dxfprint/api"
	"github.com/kapilmoond/dxfprint/dxf"
)

// aciColors is the practical subset of the AutoCAD Color Index used by
// construction drawings. Unknown indices resolve to black.
var aciColors = map[int]api.Color{
	1: api.Red,
	2: api.Yellow,
	3: api.Green,
	4: api.Cyan,
	5: api.Blue,
	6: api.Magenta,
	8: api.Gray,
}

// layerHeuristics maps conventional construction layer-name fragments to
// draw colors, checked in order.
var layerHeuristics = []struct {
	fragment string
	color    api.Color
}{
	{"dimension", api.Gray},
	{"reinforcement", api.Red},
	{"hidden", api.Gray},
	{"centerline", api.Green},
	{"center", api.Green},
	{"hatch", api.LightGray},
	{"grid", api.LightGray},
}

// ColorFor resolves the draw color for an entity: an explicit color
// index wins, otherwise the layer name is matched against conventional
// construction-layer fragments, defaulting to black.
func ColorFor(attrs dxf.Common) api.Color {
	if attrs.ColorIndex != nil {
		if c, ok := aciColors[*attrs.ColorIndex]; ok {
			return c
		}
		return api.Black
	}

	layer := strings.ToLower(attrs.Layer)
	for _, h := range layerHeuristics {
		if strings.Contains(layer, h.fragment) {
			return h.color
		}
	}
	return api.Black
}
