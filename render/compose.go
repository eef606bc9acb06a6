package render

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/kapilmoond/dxfprint/api"
)

// Meta is the caller-supplied document metadata echoed onto the title
// and specifications pages. Composition is purely additive; none of
// this feeds back into geometry.
type Meta struct {
	Title         string
	Description   string
	ComponentName string
	NominalScale  string
	Width         float64
	Height        float64
	SourceFile    string
	Units         string
	PaperSize     string
	Layers        []string
	Date          string
}

// Composer assembles the three-page print document: title page, drawing
// page and specifications page.
type Composer struct {
	Page        api.Rect
	Margin      float64
	DrawingArea api.Rect
}

// NewComposer returns an A4-portrait composer. The drawing area is the
// page net of margins, a header band for the drawing title and a footer
// band for the scale line.
func NewComposer() *Composer {
	return &Composer{
		Page:        api.Rect{Width: 210, Height: 297},
		Margin:      15,
		DrawingArea: api.Rect{X: 15, Y: 35, Width: 180, Height: 230},
	}
}

// Compose builds the complete output document. The drawing commands are
// taken as already rendered; when the fallback page replaces them it is
// passed in the same way.
func (c *Composer) Compose(meta Meta, drawing api.Page, layerCounts map[string]int) *api.Document {
	doc := &api.Document{}
	doc.AddPage(c.TitlePage(meta))
	doc.AddPage(drawing)
	doc.AddPage(c.SpecificationsPage(meta, layerCounts))
	return doc
}

// TitlePage lays out the drawing metadata with a simple border and a
// title block band along the bottom.
func (c *Composer) TitlePage(meta Meta) api.Page {
	page := api.Page{Name: "title", Size: c.Page}

	inset := c.Margin - 5
	page.Add(borderRect(inset, inset, c.Page.Width-2*inset, c.Page.Height-2*inset))

	y := 60.0
	page.Add(api.PlaceText{At: api.Point{X: c.Page.Width / 2, Y: y}, Text: strings.ToUpper(meta.Title), Size: 8, Color: api.Black, Bold: true})
	y += 14
	if meta.ComponentName != "" {
		page.Add(api.PlaceText{At: api.Point{X: c.Page.Width / 2, Y: y}, Text: meta.ComponentName, Size: 5, Color: api.Gray})
		y += 10
	}
	page.Add(api.PlaceText{At: api.Point{X: c.Page.Width / 2, Y: y}, Text: "CONSTRUCTION DRAWING", Size: 4, Color: api.Gray})

	// Title block band.
	blockTop := c.Page.Height - 70
	page.Add(api.StrokeLine{
		From:  api.Point{X: inset, Y: blockTop},
		To:    api.Point{X: c.Page.Width - inset, Y: blockTop},
		Color: api.Black,
		Width: DefaultStrokeWidth,
	})

	left := c.Margin
	y = blockTop + 10
	for _, line := range []string{
		fmt.Sprintf("Scale: %s", orDash(meta.NominalScale)),
		fmt.Sprintf("Size: %.0f x %.0f mm", meta.Width, meta.Height),
		fmt.Sprintf("Source: %s", orDash(meta.SourceFile)),
		fmt.Sprintf("Date: %s", orDash(meta.Date)),
		fmt.Sprintf("Drawing No: %s", drawingNumber(meta.Title)),
	} {
		page.Add(api.PlaceText{At: api.Point{X: left, Y: y}, Text: line, Size: 3.5, Color: api.Black})
		y += 8
	}
	return page
}

// DrawingPage wraps rendered entity commands with the page header and
// the scale / entity-count footer line.
func (c *Composer) DrawingPage(commands []api.Command, scaleLabel string, rendered, total int) api.Page {
	page := api.Page{Name: "drawing", Size: c.Page}

	page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: c.Margin + 5}, Text: "DRAWING", Size: 5, Color: api.Black, Bold: true})
	page.Add(commands...)

	footer := fmt.Sprintf("%s : %d / %d entities", scaleLabel, rendered, total)
	page.Add(api.PlaceText{
		At:    api.Point{X: c.Margin, Y: c.Page.Height - c.Margin},
		Text:  footer,
		Size:  3.5,
		Color: api.Gray,
	})
	return page
}

// SpecificationsPage echoes the free-text description plus structural
// metadata: units, paper size, and the layers seen with entity counts.
func (c *Composer) SpecificationsPage(meta Meta, layerCounts map[string]int) api.Page {
	page := api.Page{Name: "specifications", Size: c.Page}

	y := c.Margin + 10
	page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: y}, Text: "SPECIFICATIONS", Size: 6, Color: api.Black, Bold: true})
	y += 12

	for _, line := range wrapText(meta.Description, 90) {
		page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: y}, Text: line, Size: 3.5, Color: api.Black})
		y += 6
	}
	y += 6

	if meta.Units != "" {
		page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: y}, Text: fmt.Sprintf("Units: %s", meta.Units), Size: 3.5, Color: api.Black})
		y += 6
	}
	if meta.PaperSize != "" {
		page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: y}, Text: fmt.Sprintf("Paper: %s", meta.PaperSize), Size: 3.5, Color: api.Black})
		y += 6
	}

	layers := layerLines(meta.Layers, layerCounts)
	if len(layers) > 0 {
		y += 4
		page.Add(api.PlaceText{At: api.Point{X: c.Margin, Y: y}, Text: "Layers:", Size: 4, Color: api.Black, Bold: true})
		y += 7
		for _, line := range layers {
			page.Add(api.PlaceText{At: api.Point{X: c.Margin + 5, Y: y}, Text: line, Size: 3.5, Color: api.Gray})
			y += 6
		}
	}
	return page
}

// ScaleLabel formats a page-mm-per-model-unit scale as a drawing ratio.
func ScaleLabel(scale float64) string {
	if scale >= 1 {
		return fmt.Sprintf("%.3g:1", scale)
	}
	return fmt.Sprintf("1:%.3g", 1/scale)
}

// layerLines merges declared layers with the counts observed in the
// drawing, declared order first, then any undeclared layers sorted.
func layerLines(declared []string, counts map[string]int) []string {
	var lines []string
	seen := map[string]bool{}
	for _, name := range declared {
		seen[name] = true
		lines = append(lines, fmt.Sprintf("%s (%d entities)", name, counts[name]))
	}

	var rest []string
	for name := range counts {
		if !seen[name] && name != "" {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		lines = append(lines, fmt.Sprintf("%s (%d entities)", name, counts[name]))
	}
	return lines
}

// drawingNumber derives a stable drawing number from the title so
// regenerating the same drawing yields the same document.
func drawingNumber(title string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	return fmt.Sprintf("DWG-%08X", h.Sum32())
}

func borderRect(x, y, w, h float64) api.StrokePolyline {
	return api.StrokePolyline{
		Points: []api.Point{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		},
		Closed: true,
		Color:  api.Black,
		Width:  DefaultStrokeWidth,
	}
}

func wrapText(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
