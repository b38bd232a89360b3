package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/StairCut/internal/export"
	"github.com/piwi3910/StairCut/internal/model"
)

func TestImportDXFRoundTrip(t *testing.T) {
	parts := []model.Part{
		{ID: 1, Name: "treads_1", Width: 600, Height: 400,
			Outer: model.Outline{{X: 0, Y: 0}, {X: 600, Y: 0}, {X: 600, Y: 400}, {X: 0, Y: 400}}},
		{ID: 2, Name: "risers_1", Width: 800, Height: 200,
			Outer: model.Outline{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 200}, {X: 0, Y: 200}}},
	}
	path := filepath.Join(t.TempDir(), "parts.dxf")
	require.NoError(t, export.ExportProfilesDXF(path, parts))

	res := ImportDXF(path)
	require.Empty(t, res.Errors)
	require.Len(t, res.Parts, 2)

	sizes := map[float64]float64{}
	for _, p := range res.Parts {
		sizes[p.Width] = p.Height
		assert.Len(t, p.Outer, 4)
		min, _ := p.Outer.BoundingBox()
		assert.InDelta(t, 0, min.X, 1e-9)
		assert.InDelta(t, 0, min.Y, 1e-9)
	}
	assert.InDelta(t, 400, sizes[600], 1e-9)
	assert.InDelta(t, 200, sizes[800], 1e-9)
}

func TestImportDXFMissingFile(t *testing.T) {
	res := ImportDXF(filepath.Join(t.TempDir(), "absent.dxf"))
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Parts)
}

func TestChainSegmentsClosesSquare(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 100, Y: 0}},
		{start: model.Point2D{X: 100, Y: 0}, end: model.Point2D{X: 100, Y: 100}},
		{start: model.Point2D{X: 100, Y: 100}, end: model.Point2D{X: 0, Y: 100}},
		{start: model.Point2D{X: 0, Y: 100}, end: model.Point2D{X: 0, Y: 0}},
	}
	outlines := chainSegments(segs, 0.01)
	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 4)
	assert.InDelta(t, 10000, outlines[0].SignedArea(), 1)
}

func TestChainSegmentsIgnoresOpenChain(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 50, Y: 0}},
	}
	outlines := chainSegments(segs, 0.01)
	assert.Empty(t, outlines)
}

func TestNormalizeOutline(t *testing.T) {
	o := model.Outline{{X: 10, Y: 20}, {X: 110, Y: 20}, {X: 110, Y: 70}, {X: 10, Y: 70}}
	n := normalizeOutline(o)
	min, max := n.BoundingBox()
	assert.InDelta(t, 0, min.X, 1e-9)
	assert.InDelta(t, 0, min.Y, 1e-9)
	assert.InDelta(t, 100, max.X, 1e-9)
	assert.InDelta(t, 50, max.Y, 1e-9)
}
