package pdf

import (
	"fmt"
	"math"

	"github.com/kapilmoond/dxfprint/api"
	svgfmt "github.com/kapilmoond/dxfprint/formatters/svg"
)

// rasterResolution is the pixel density of embedded pages, in pixels
// per page millimeter. 8 px/mm keeps thin CAD strokes visible at print
// size without ballooning the PDF.
const rasterResolution = 8.0

// Writer serializes a rendered document to a single PDF, one document
// page per PDF page.
type Writer struct {
	svg   *svgfmt.Writer
	debug bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithDebugGrid enables Maroto's layout grid on the output.
func WithDebugGrid(enabled bool) WriterOption {
	return func(w *Writer) { w.debug = enabled }
}

// NewWriter returns a PDF writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{svg: &svgfmt.Writer{Resolution: rasterResolution}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes the document.
func (w *Writer) Write(doc *api.Document) ([]byte, error) {
	builder := NewBuilder(WithDebug(w.debug))

	for _, page := range doc.Pages {
		svgBytes, err := w.svg.Page(page)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}

		widthPx := int(math.Round(page.Size.Width * rasterResolution))
		heightPx := int(math.Round(page.Size.Height * rasterResolution))
		pngBytes, err := rasterizeSVG(svgBytes, widthPx, heightPx)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}

		// Fit the page image to the printable width; the row height
		// preserves the page aspect ratio.
		usableWidth := page.Size.Width - 2*pageMargin
		rowHeight := usableWidth * page.Size.Height / page.Size.Width
		builder.AddImagePage(pngBytes, rowHeight)
	}

	return builder.Output()
}
