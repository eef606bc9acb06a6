package dxfprint

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapilmoond/dxfprint/api"
	"github.com/kapilmoond/dxfprint/dxf"
)

func encodeDXF(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

func wrapEntities(body string) string {
	return "0\nSECTION\n2\nENTITIES\n" + body + "0\nENDSEC\n0\nEOF\n"
}

func testInput(dxfText string) Input {
	return Input{
		Title:            "Test Drawing",
		Description:      "A unit-test drawing.",
		DXFContentBase64: encodeDXF(dxfText),
		ComponentName:    "Component C-1",
		NominalScale:     "1:50",
		Dimensions:       Dimensions{Width: 100, Height: 100},
		Units:            "mm",
	}
}

const lineAndCircle = "0\nLINE\n8\nCONSTRUCTION\n10\n0\n20\n0\n11\n100\n21\n100\n" +
	"0\nCIRCLE\n8\nSTRUCTURAL\n10\n50\n20\n50\n40\n25\n"

func TestConvert_LineAndCircle(t *testing.T) {
	doc, diag, err := Convert(testInput(wrapEntities(lineAndCircle)))
	require.NoError(t, err)

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "drawing", doc.Pages[1].Name)

	assert.Equal(t, 2, diag.TotalEntities)
	assert.Equal(t, 2, diag.Rendered)
	assert.Empty(t, diag.Dropped)
	assert.Empty(t, diag.Skipped)
	assert.True(t, diag.Clean())
	assert.False(t, diag.FallbackUsed)

	// Footer reports scale and entity counts.
	var footer string
	for _, cmd := range doc.Pages[1].Commands {
		if text, ok := cmd.(api.PlaceText); ok && strings.Contains(text.Text, "entities") {
			footer = text.Text
		}
	}
	assert.Contains(t, footer, "2 / 2 entities")
}

func TestConvert_InvalidBase64(t *testing.T) {
	input := testInput("")
	input.DXFContentBase64 = "!!! definitely not base64 !!!"

	doc, _, err := Convert(input)
	require.Error(t, err)
	assert.Nil(t, doc)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))

	var decodeErr *dxf.DecodeError
	assert.True(t, errors.As(err, &decodeErr), "cause is preserved")
}

func TestConvert_EmptyEntitiesProducesFallback(t *testing.T) {
	doc, diag, err := Convert(testInput(wrapEntities("")))
	require.NoError(t, err)

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "drawing-fallback", doc.Pages[1].Name)
	assert.NotEmpty(t, doc.Pages[1].Commands, "fallback page carries test geometry")
	assert.True(t, diag.FallbackUsed)
}

func TestConvert_UnsupportedTypesOnlyProducesFallback(t *testing.T) {
	doc, diag, err := Convert(testInput(wrapEntities("0\nSPLINE\n8\n0\n10\n1\n20\n2\n")))
	require.NoError(t, err)

	assert.Equal(t, "drawing-fallback", doc.Pages[1].Name)
	assert.True(t, diag.FallbackUsed)
	assert.Equal(t, 0, diag.Normalized)
	require.Len(t, diag.Ignored, 1)
	assert.Equal(t, "SPLINE", diag.Ignored[0].EntityType)
}

func TestConvert_CarriageReturnOnlyFileRecoveredByRetry(t *testing.T) {
	// A file with bare CR separators is one long line to the tag
	// scanner; the retry with normalized line endings recovers it.
	crOnly := strings.ReplaceAll(wrapEntities(lineAndCircle), "\n", "\r")

	doc, diag, err := Convert(testInput(crOnly))
	require.NoError(t, err)

	assert.True(t, diag.ParseRetried)
	assert.False(t, diag.ParseFailed)
	assert.Equal(t, 2, diag.Rendered)
	assert.Equal(t, "drawing", doc.Pages[1].Name)
}

func TestConvert_UnparsableContentDegradesToFallback(t *testing.T) {
	doc, diag, err := Convert(testInput("not a dxf file at all"))
	require.NoError(t, err, "parse failures are not fatal")

	assert.True(t, diag.ParseRetried)
	assert.True(t, diag.ParseFailed)
	assert.True(t, diag.FallbackUsed)
	assert.Equal(t, "drawing-fallback", doc.Pages[1].Name)
}

func TestConvert_DroppedEntityDoesNotAbort(t *testing.T) {
	body := lineAndCircle + "0\nCIRCLE\n8\n0\n10\n5\n20\n5\n40\n-1\n"

	doc, diag, err := Convert(testInput(wrapEntities(body)))
	require.NoError(t, err)

	assert.Equal(t, "drawing", doc.Pages[1].Name)
	assert.Equal(t, 3, diag.TotalEntities)
	assert.Equal(t, 2, diag.Rendered)
	require.Len(t, diag.Dropped, 1)
	assert.Equal(t, "CIRCLE", diag.Dropped[0].EntityType)
}

func TestConvert_CustomParser(t *testing.T) {
	parser := stubParser{records: []dxf.RawEntity{{
		Type: "LINE",
		Fields: map[string]any{
			"start": map[string]any{"x": 0.0, "y": 0.0},
			"end":   map[string]any{"x": 10.0, "y": 10.0},
		},
	}}}

	converter := NewConverter(WithParser(parser))
	doc, diag, err := converter.Convert(testInput("ignored by stub"))
	require.NoError(t, err)

	assert.Equal(t, 1, diag.Rendered)
	assert.Equal(t, "drawing", doc.Pages[1].Name)
}

type stubParser struct {
	records []dxf.RawEntity
}

func (s stubParser) Parse(string) ([]dxf.RawEntity, error) { return s.records, nil }

func TestConvert_ConcurrentCallsAreIndependent(t *testing.T) {
	converter := NewConverter()
	input := testInput(wrapEntities(lineAndCircle))

	done := make(chan *api.Diagnostics, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, diag, err := converter.Convert(input)
			assert.NoError(t, err)
			done <- diag
		}()
	}
	for i := 0; i < 8; i++ {
		diag := <-done
		assert.Equal(t, 2, diag.Rendered)
	}
}
