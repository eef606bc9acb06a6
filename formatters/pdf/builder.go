// Package pdf serializes a rendered document to PDF. Pages are drawn as
// SVG, rasterized to PNG and embedded full-page, so vector geometry,
// text placement and colors come out exactly as the renderer emitted
// them.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimages "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
)

const pageMargin = 10 // mm

// Builder wraps Maroto for PDF assembly.
type Builder struct {
	maroto    core.Maroto
	debugMode bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDebug enables Maroto's grid overlay.
func WithDebug(enabled bool) BuilderOption {
	return func(b *Builder) { b.debugMode = enabled }
}

// NewBuilder creates an A4 PDF builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(pageMargin).
		WithRightMargin(pageMargin).
		WithTopMargin(pageMargin).
		WithBottomMargin(pageMargin).
		WithDebug(b.debugMode).
		Build()

	b.maroto = maroto.New(cfg)
	return b
}

// AddImagePage adds one full-height image row, which Maroto flows onto
// its own page.
func (b *Builder) AddImagePage(pngBytes []byte, heightMM float64) {
	imageCol := col.New(12).Add(marotoimages.NewFromBytes(pngBytes, extension.Png))
	b.maroto.AddRows(row.New(heightMM).Add(imageCol))
}

// Output generates the final PDF bytes.
func (b *Builder) Output() ([]byte, error) {
	document, err := b.maroto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}
