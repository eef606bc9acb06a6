package render

import (
	"github.com/kapilmoond/dxfprint/api"
)

// FallbackPage replaces the drawing page when parsing failed outright or
// no entity survived normalization. It draws labeled test geometry so
// the document is never blank and the degenerate case is visible to the
// reader instead of failing silently.
func (c *Composer) FallbackPage(reason string) api.Page {
	page := api.Page{Name: "drawing-fallback", Size: c.Page}

	page.Add(api.PlaceText{
		At:    api.Point{X: c.Margin, Y: c.Margin + 5},
		Text:  "NO DRAWING GEOMETRY",
		Size:  5,
		Color: api.Red,
		Bold:  true,
	})
	page.Add(api.PlaceText{
		At:    api.Point{X: c.Margin, Y: c.Margin + 12},
		Text:  reason,
		Size:  3.5,
		Color: api.Gray,
	})

	area := c.DrawingArea
	cx := area.X + area.Width/2
	cy := area.Y + area.Height/2

	// Test rectangle.
	page.Add(api.StrokePolyline{
		Points: []api.Point{
			{X: area.X + 20, Y: area.Y + 30},
			{X: area.X + 80, Y: area.Y + 30},
			{X: area.X + 80, Y: area.Y + 70},
			{X: area.X + 20, Y: area.Y + 70},
		},
		Closed: true,
		Color:  api.Blue,
		Width:  DefaultStrokeWidth,
	})
	page.Add(api.PlaceText{At: api.Point{X: area.X + 20, Y: area.Y + 78}, Text: "test rectangle", Size: 3, Color: api.Gray})

	// Test circle.
	page.Add(api.StrokeCircle{
		Center: api.Point{X: cx + 40, Y: cy},
		Radius: 20,
		Color:  api.Green,
		Width:  DefaultStrokeWidth,
	})
	page.Add(api.PlaceText{At: api.Point{X: cx + 20, Y: cy + 28}, Text: "test circle", Size: 3, Color: api.Gray})

	// Test line.
	page.Add(api.StrokeLine{
		From:  api.Point{X: area.X + 20, Y: area.Y + area.Height - 40},
		To:    api.Point{X: area.X + area.Width - 20, Y: area.Y + area.Height - 70},
		Color: api.Red,
		Width: DefaultStrokeWidth,
	})
	page.Add(api.PlaceText{At: api.Point{X: area.X + 20, Y: area.Y + area.Height - 32}, Text: "test line", Size: 3, Color: api.Gray})

	return page
}
