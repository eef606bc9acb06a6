package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapilmoond/dxfprint/api"
)

func a4Page(name string, cmds ...api.Command) api.Page {
	return api.Page{
		Name:     name,
		Size:     api.Rect{Width: 210, Height: 297},
		Commands: cmds,
	}
}

func TestWriter_Page(t *testing.T) {
	page := a4Page("drawing",
		api.StrokeLine{From: api.Point{X: 10, Y: 10}, To: api.Point{X: 100, Y: 100}, Color: api.Red, Width: 0.25},
		api.StrokeCircle{Center: api.Point{X: 50, Y: 50}, Radius: 25, Color: api.Black, Width: 0.25},
		api.PlaceText{At: api.Point{X: 15, Y: 20}, Text: "BEAM B-102", Size: 3.5, Color: api.Gray},
	)

	data, err := NewWriter().Page(page)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "<svg")
	assert.Contains(t, content, "</svg>")
	// 210mm x 297mm at 4 px/mm.
	assert.Contains(t, content, `width="840"`)
	assert.Contains(t, content, `height="1188"`)

	assert.Equal(t, 1, strings.Count(content, "<line"))
	assert.Equal(t, 1, strings.Count(content, "<circle"))
	assert.Contains(t, content, "BEAM B-102")
	assert.Contains(t, content, "stroke:#ff0000")
}

func TestWriter_ClosedPolylineBecomesPolygon(t *testing.T) {
	square := api.StrokePolyline{
		Points: []api.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Closed: true,
		Color:  api.Black,
		Width:  0.25,
	}
	open := api.StrokePolyline{
		Points: []api.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		Color:  api.Black,
		Width:  0.25,
	}

	data, err := NewWriter().Page(a4Page("drawing", square, open))
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 1, strings.Count(content, "<polygon"))
	assert.Equal(t, 1, strings.Count(content, "<polyline"))
	assert.Contains(t, content, "fill:none")
}

func TestWriter_BoldText(t *testing.T) {
	data, err := NewWriter().Page(a4Page("title",
		api.PlaceText{At: api.Point{X: 105, Y: 60}, Text: "TITLE", Size: 8, Color: api.Black, Bold: true},
	))
	require.NoError(t, err)
	assert.Contains(t, string(data), "font-weight:bold")
}

func TestWriter_Pages(t *testing.T) {
	doc := &api.Document{}
	doc.AddPage(a4Page("title"))
	doc.AddPage(a4Page("drawing"))
	doc.AddPage(a4Page("specifications"))

	pages, err := NewWriter().Pages(doc)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for _, page := range pages {
		assert.Contains(t, string(page), "<svg")
	}
}
