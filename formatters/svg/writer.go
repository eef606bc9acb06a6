// Package svg serializes a rendered document to one SVG image per page.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/kapilmoond/dxfprint/api"
)

// DefaultResolution is the raster density of the SVG canvas in pixels
// per page millimeter.
const DefaultResolution = 4.0

// Writer replays page draw commands onto an svgo canvas.
type Writer struct {
	// Resolution is the pixels-per-millimeter factor applied to every
	// coordinate. Zero means DefaultResolution.
	Resolution float64
}

// NewWriter returns a Writer at the default resolution.
func NewWriter() *Writer {
	return &Writer{Resolution: DefaultResolution}
}

// Pages serializes every page of the document.
func (w *Writer) Pages(doc *api.Document) ([][]byte, error) {
	out := make([][]byte, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		data, err := w.Page(page)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// Page serializes one page.
func (w *Writer) Page(page api.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.WritePage(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePage streams one page as a standalone SVG image.
func (w *Writer) WritePage(out io.Writer, page api.Page) error {
	canvas := svgo.New(out)
	canvas.Start(w.px(page.Size.Width), w.px(page.Size.Height))
	canvas.Rect(0, 0, w.px(page.Size.Width), w.px(page.Size.Height), "fill:white")

	for _, cmd := range page.Commands {
		w.draw(canvas, cmd)
	}

	canvas.End()
	return nil
}

func (w *Writer) draw(canvas *svgo.SVG, cmd api.Command) {
	switch c := cmd.(type) {
	case api.StrokeLine:
		canvas.Line(w.px(c.From.X), w.px(c.From.Y), w.px(c.To.X), w.px(c.To.Y), w.strokeStyle(c.Color, c.Width))
	case api.StrokeCircle:
		canvas.Circle(w.px(c.Center.X), w.px(c.Center.Y), w.px(c.Radius), w.strokeStyle(c.Color, c.Width))
	case api.StrokePolyline:
		xs := make([]int, len(c.Points))
		ys := make([]int, len(c.Points))
		for i, p := range c.Points {
			xs[i], ys[i] = w.px(p.X), w.px(p.Y)
		}
		if c.Closed {
			canvas.Polygon(xs, ys, w.strokeStyle(c.Color, c.Width))
		} else {
			canvas.Polyline(xs, ys, w.strokeStyle(c.Color, c.Width))
		}
	case api.PlaceText:
		canvas.Text(w.px(c.At.X), w.px(c.At.Y), c.Text, w.textStyle(c))
	}
}

func (w *Writer) strokeStyle(color api.Color, width float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", color.Hex(), width*w.resolution())
}

func (w *Writer) textStyle(c api.PlaceText) string {
	style := fmt.Sprintf("font-family:Helvetica,sans-serif;font-size:%dpx;fill:%s", w.px(c.Size), c.Color.Hex())
	if c.Bold {
		style += ";font-weight:bold"
	}
	return style
}

func (w *Writer) px(mm float64) int {
	return int(math.Round(mm * w.resolution()))
}

func (w *Writer) resolution() float64 {
	if w.Resolution > 0 {
		return w.Resolution
	}
	return DefaultResolution
}
