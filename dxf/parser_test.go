package dxf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	entitiesHeader = "0\nSECTION\n2\nENTITIES\n"
	entitiesFooter = "0\nENDSEC\n0\nEOF\n"
)

func TestGrammarParser_LineAndCircle(t *testing.T) {
	text := entitiesHeader +
		"0\nLINE\n8\nCONSTRUCTION\n10\n0.0\n20\n0.0\n11\n100.0\n21\n100.0\n" +
		"0\nCIRCLE\n8\nSTRUCTURAL\n62\n1\n10\n50.0\n20\n50.0\n40\n25.0\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 2)

	line := records[0]
	assert.Equal(t, "LINE", line.Type)
	assert.Equal(t, "CONSTRUCTION", line.Layer)
	assert.Nil(t, line.ColorIndex)
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0}, line.Fields["start"])
	assert.Equal(t, map[string]any{"x": 100.0, "y": 100.0}, line.Fields["end"])

	circle := records[1]
	assert.Equal(t, "CIRCLE", circle.Type)
	require.NotNil(t, circle.ColorIndex)
	assert.Equal(t, 1, *circle.ColorIndex)
	assert.Equal(t, map[string]any{"x": 50.0, "y": 50.0}, circle.Fields["center"])
	assert.Equal(t, 25.0, circle.Fields["radius"])
}

func TestGrammarParser_LWPolyline(t *testing.T) {
	text := entitiesHeader +
		"0\nLWPOLYLINE\n8\n0\n90\n4\n70\n1\n" +
		"10\n0\n20\n0\n10\n10\n20\n0\n10\n10\n20\n10\n10\n0\n20\n10\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)

	raw := records[0]
	assert.Equal(t, "LWPOLYLINE", raw.Type)
	assert.Equal(t, true, raw.Fields["closed"])
	vertices := raw.Fields["vertices"].([]any)
	require.Len(t, vertices, 4)
	assert.Equal(t, []float64{10, 10}, vertices[2])
}

func TestGrammarParser_PolylineVertexRun(t *testing.T) {
	text := entitiesHeader +
		"0\nPOLYLINE\n8\nGRID\n" +
		"0\nVERTEX\n10\n0\n20\n5\n" +
		"0\nVERTEX\n10\n20\n20\n5\n" +
		"0\nSEQEND\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)

	vertices := records[0].Fields["vertices"].([]any)
	require.Len(t, vertices, 2)
	assert.Equal(t, []float64{0, 5}, vertices[0])
	assert.Equal(t, []float64{20, 5}, vertices[1])
}

func TestGrammarParser_Text(t *testing.T) {
	text := entitiesHeader +
		"0\nTEXT\n8\nTEXT\n10\n5\n20\n7\n40\n3.5\n1\nBEAM B-102\n" +
		"0\nMTEXT\n8\nTEXT\n10\n1\n20\n2\n3\nfirst chunk \n1\nsecond chunk\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "BEAM B-102", records[0].Fields["text"])
	assert.Equal(t, 3.5, records[0].Fields["height"])
	assert.Equal(t, "first chunk second chunk", records[1].Fields["text"])
}

func TestGrammarParser_Dimension(t *testing.T) {
	text := entitiesHeader +
		"0\nDIMENSION\n8\nDIMENSIONS\n10\n0\n20\n0\n11\n50\n21\n10\n1\n5000 mm\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0}, records[0].Fields["definingPoint"])
	assert.Equal(t, map[string]any{"x": 50.0, "y": 10.0}, records[0].Fields["middleOfText"])
	assert.Equal(t, "5000 mm", records[0].Fields["text"])
}

func TestGrammarParser_HatchEdges(t *testing.T) {
	text := entitiesHeader +
		"0\nHATCH\n8\nHATCHING\n" +
		"10\n0\n20\n0\n11\n10\n21\n0\n" +
		"10\n10\n20\n0\n11\n10\n21\n10\n" +
		entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)

	edges := records[0].Fields["edges"].([]any)
	require.Len(t, edges, 2)
	first := edges[0].(map[string]any)
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0}, first["start"])
	assert.Equal(t, map[string]any{"x": 10.0, "y": 0.0}, first["end"])
}

func TestGrammarParser_UnsupportedTypeStillEmitted(t *testing.T) {
	text := entitiesHeader + "0\nSPLINE\n8\n0\n10\n1\n20\n2\n" + entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SPLINE", records[0].Type)
}

func TestGrammarParser_OutsideEntitiesIgnored(t *testing.T) {
	text := "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\nAC1027\n0\nENDSEC\n" +
		entitiesHeader + "0\nLINE\n10\n0\n20\n0\n11\n1\n21\n1\n" + entitiesFooter

	records, err := GrammarParser{}.Parse(text)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGrammarParser_EmptyEntitiesSection(t *testing.T) {
	records, err := GrammarParser{}.Parse(entitiesHeader + entitiesFooter)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGrammarParser_MalformedGroupCode(t *testing.T) {
	_, err := GrammarParser{}.Parse("0\nSECTION\nnot-a-code\nLINE\n")
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestGrammarParser_DanglingCode(t *testing.T) {
	_, err := GrammarParser{}.Parse(entitiesHeader + "0")
	require.Error(t, err)
}
