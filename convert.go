// Package dxfprint converts base64-embedded DXF drawings into paginated
// print documents: a title page, a scale-to-fit rendered drawing page
// and a specifications page. Output writers live in formatters/svg and
// formatters/pdf.
package dxfprint

import (
	"fmt"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/kapilmoond/dxfprint/api"
	"github.com/kapilmoond/dxfprint/dxf"
	"github.com/kapilmoond/dxfprint/render"
)

// Dimensions is the nominal drawing size declared by the caller, in mm.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Input is the conversion request handed in by the surrounding
// application.
type Input struct {
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	DXFContentBase64 string     `json:"dxfContentBase64" yaml:"dxfContentBase64"`
	ComponentName    string     `json:"componentName" yaml:"componentName"`
	NominalScale     string     `json:"nominalScale" yaml:"nominalScale"`
	Dimensions       Dimensions `json:"dimensions" yaml:"dimensions"`

	// Optional structural metadata echoed on the specifications page.
	SourceFile string   `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`
	Units      string   `json:"units,omitempty" yaml:"units,omitempty"`
	PaperSize  string   `json:"paperSize,omitempty" yaml:"paperSize,omitempty"`
	Layers     []string `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// ConversionError is the only error surfaced to callers: decode
// failures and unrecoverable composition failures. Everything else is
// recovered locally and recorded in the diagnostics.
type ConversionError struct {
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Converter runs the conversion pipeline. Each Convert call owns its
// own intermediate state; a Converter is safe for concurrent use.
type Converter struct {
	opts     Options
	parser   dxf.Parser
	composer *render.Composer
	now      func() time.Time
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithOptions replaces the default pipeline options.
func WithOptions(opts Options) ConverterOption {
	return func(c *Converter) { c.opts = opts }
}

// WithParser swaps the DXF grammar parser. The default is the built-in
// group-code parser.
func WithParser(p dxf.Parser) ConverterOption {
	return func(c *Converter) { c.parser = p }
}

// NewConverter builds a converter with the default parser, composer and
// options.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		opts:     DefaultOptions(),
		parser:   dxf.GrammarParser{},
		composer: render.NewComposer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the whole pipeline and returns the three-page document
// with the diagnostics trail. The caller receives either a complete
// document (possibly the fallback one) or a ConversionError, never a
// partial document.
func Convert(input Input) (*api.Document, *api.Diagnostics, error) {
	return NewConverter().Convert(input)
}

// Convert implements the pipeline: decode, parse (with one line-ending
// retry), normalize, bounds, transform, render loop, compose.
func (c *Converter) Convert(input Input) (*api.Document, *api.Diagnostics, error) {
	diag := &api.Diagnostics{}

	text, err := dxf.DecodeContent(input.DXFContentBase64)
	if err != nil {
		return nil, diag, &ConversionError{Message: "invalid drawing content", Err: err}
	}

	records := c.parse(text, diag)
	entities := dxf.Normalize(records, diag)
	meta := c.metaFor(input)

	if len(entities) == 0 {
		diag.FallbackUsed = true
		logger.Infof("no usable entities for %q, composing fallback page", input.Title)
		return c.compose(meta, c.composer.FallbackPage(fallbackReason(diag)), nil, diag)
	}

	bounds := dxf.ComputeBounds(entities)
	transform := render.DeriveTransform(bounds, c.composer.DrawingArea, c.opts.Scale)
	logger.Debugf("bounds %s scale %.4f", bounds, transform.Scale)

	renderer := render.NewRenderer(transform)
	renderer.ArcSegments = c.opts.ArcSegments
	renderer.MinTextSize = c.opts.MinTextSize
	renderer.StrokeWidth = c.opts.StrokeWidth

	commands := renderer.RenderAll(entities, diag)
	page := c.composer.DrawingPage(commands, render.ScaleLabel(transform.Scale), diag.Rendered, diag.TotalEntities)

	layerCounts := lo.CountValuesBy(entities, func(e dxf.Entity) string {
		return e.Attributes().Layer
	})
	return c.compose(meta, page, layerCounts, diag)
}

// parse invokes the grammar parser, retrying once with normalized line
// endings. A parser that still fails degrades to an empty record set;
// the failure is recorded, not propagated.
func (c *Converter) parse(text string, diag *api.Diagnostics) []dxf.RawEntity {
	records, err := c.parser.Parse(text)
	if err == nil {
		return records
	}

	diag.ParseRetried = true
	logger.Warnf("dxf parse failed, retrying with normalized line endings: %v", err)

	records, err = c.parser.Parse(dxf.NormalizeLineEndings(text))
	if err != nil {
		diag.ParseFailed = true
		diag.ParseError = err.Error()
		logger.Warnf("dxf parse retry failed: %v", err)
		return nil
	}
	return records
}

// compose assembles the final document, converting a composition panic
// into the top-level error.
func (c *Converter) compose(meta render.Meta, drawing api.Page, layerCounts map[string]int, diag *api.Diagnostics) (doc *api.Document, _ *api.Diagnostics, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, &ConversionError{Message: fmt.Sprintf("page composition: %v", p)}
		}
	}()

	doc = c.composer.Compose(meta, drawing, layerCounts)
	return doc, diag, nil
}

func (c *Converter) metaFor(input Input) render.Meta {
	return render.Meta{
		Title:         input.Title,
		Description:   input.Description,
		ComponentName: input.ComponentName,
		NominalScale:  input.NominalScale,
		Width:         input.Dimensions.Width,
		Height:        input.Dimensions.Height,
		SourceFile:    input.SourceFile,
		Units:         input.Units,
		PaperSize:     input.PaperSize,
		Layers:        input.Layers,
		Date:          c.now().Format("2006-01-02"),
	}
}

func fallbackReason(diag *api.Diagnostics) string {
	switch {
	case diag.ParseFailed:
		return "the drawing file could not be parsed"
	case diag.TotalEntities == 0:
		return "the drawing file contains no entities"
	default:
		return fmt.Sprintf("none of the %d entities carried usable geometry", diag.TotalEntities)
	}
}
