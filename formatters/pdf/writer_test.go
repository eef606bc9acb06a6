package pdf

import (
	"bytes"
	"testing"

	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapilmoond/dxfprint/api"
)

func testDocument() *api.Document {
	size := api.Rect{Width: 210, Height: 297}
	doc := &api.Document{}

	doc.AddPage(api.Page{Name: "title", Size: size, Commands: []api.Command{
		api.PlaceText{At: api.Point{X: 105, Y: 60}, Text: "TEST DRAWING", Size: 8, Color: api.Black, Bold: true},
	}})
	doc.AddPage(api.Page{Name: "drawing", Size: size, Commands: []api.Command{
		api.StrokeLine{From: api.Point{X: 20, Y: 40}, To: api.Point{X: 180, Y: 240}, Color: api.Black, Width: 0.25},
		api.StrokeCircle{Center: api.Point{X: 105, Y: 150}, Radius: 40, Color: api.Red, Width: 0.25},
	}})
	doc.AddPage(api.Page{Name: "specifications", Size: size, Commands: []api.Command{
		api.PlaceText{At: api.Point{X: 15, Y: 25}, Text: "SPECIFICATIONS", Size: 6, Color: api.Black},
	}})
	return doc
}

// assertValidPDF parses the output with pdfcpu for structural
// validation and returns the parsed context.
func assertValidPDF(t *testing.T, data []byte) *model.Context {
	t.Helper()

	require.True(t, len(data) > 4 && string(data[:4]) == "%PDF", "output carries a PDF header")
	ctx, err := pdfcpu.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err, "pdfcpu can read the generated PDF")
	return ctx
}

func TestWriter_Write(t *testing.T) {
	data, err := NewWriter().Write(testDocument())
	require.NoError(t, err)

	ctx := assertValidPDF(t, data)
	assert.Equal(t, 3, ctx.PageCount, "one PDF page per document page")
}

func TestWriter_EmptyDocument(t *testing.T) {
	data, err := NewWriter().Write(&api.Document{})
	require.NoError(t, err)
	assertValidPDF(t, data)
}

func TestRasterizeSVG(t *testing.T) {
	svgContent := []byte(`<?xml version="1.0"?>
<svg width="100" height="100" xmlns="http://www.w3.org/2000/svg">
    <circle cx="50" cy="50" r="20" fill="none" stroke="black"/>
</svg>`)

	pngBytes, err := rasterizeSVG(svgContent, 200, 200)
	require.NoError(t, err)
	require.NotEmpty(t, pngBytes)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, pngBytes[:4])
}

func TestRasterizeSVG_Invalid(t *testing.T) {
	_, err := rasterizeSVG([]byte("not svg"), 100, 100)
	assert.Error(t, err)
}
