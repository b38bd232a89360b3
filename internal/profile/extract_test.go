package profile

import (
	"testing"

	"github.com/piwi3910/StairCut/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestExtractRectangularPanel(t *testing.T) {
	s := geom.NewBox(r3.Vec{X: 100, Y: -50, Z: 7}, 300, 150, 20)

	p := Extract(s)
	require.NotNil(t, p)

	// The in-plane axes are arbitrary, so width/height may come back
	// swapped, but together they must match the panel dimensions.
	dims := []float64{p.Width, p.Height}
	assert.ElementsMatch(t, []float64{300, 150}, dims)

	require.Len(t, p.Outer, 4)
	min, max := p.Outer.BoundingBox()
	assert.InDelta(t, 0, min.X, 0.01)
	assert.InDelta(t, 0, min.Y, 0.01)
	assert.InDelta(t, p.Width, max.X, 0.01)
	assert.InDelta(t, p.Height, max.Y, 0.01)

	assert.InDelta(t, 300*150, p.FaceArea, 1e-6)
	assert.Zero(t, p.SkippedEdges)
	assert.Empty(t, p.Holes)
}

func TestExtractPicksLargestFace(t *testing.T) {
	// A panel standing on its edge: the cutting face is vertical.
	prof := geom.Rect(0, 0, 500, 200)
	s := geom.Extrude(prof, geom.FrameXZ(), 18)

	p := Extract(s)
	require.NotNil(t, p)
	assert.ElementsMatch(t, []float64{500, 200}, []float64{p.Width, p.Height})
	assert.InDelta(t, 500*200, p.FaceArea, 1e-6)
}

func TestExtractCarriesHoles(t *testing.T) {
	prof := geom.Rect(0, 0, 400, 180)
	prof.Holes = append(prof.Holes,
		geom.Circle(r2.Vec{X: 100, Y: 90}, 30, 32),
		geom.Circle(r2.Vec{X: 300, Y: 90}, 30, 32))
	s := geom.Extrude(prof, geom.FrameXY(), 50)

	p := Extract(s)
	require.NotNil(t, p)
	require.Len(t, p.Holes, 2)
	for _, h := range p.Holes {
		assert.Len(t, h, 32)
		min, max := h.BoundingBox()
		// Holes share the outer loop's normalized coordinates.
		assert.GreaterOrEqual(t, min.X, 0.0)
		assert.LessOrEqual(t, max.X, p.Width)
		assert.GreaterOrEqual(t, min.Y, 0.0)
		assert.LessOrEqual(t, max.Y, p.Height)
	}
}

func TestExtractCollapsesDuplicateVertices(t *testing.T) {
	// A profile with a repeated vertex: the duplicate must not survive.
	ring := geom.Ring{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 0},
		{X: 100, Y: 80}, {X: 0, Y: 80},
	}
	s := geom.Extrude(geom.Profile{Outer: ring}, geom.FrameXY(), 10)

	p := Extract(s)
	require.NotNil(t, p)
	assert.Len(t, p.Outer, 4)
}

func TestExtractRejectsDegenerate(t *testing.T) {
	assert.Nil(t, Extract(nil))

	// A ring collapsed to a single point has no face with three distinct
	// boundary points left to extract.
	point := geom.Ring{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	s := geom.Extrude(geom.Profile{Outer: point}, geom.FrameXY(), 10)
	assert.Nil(t, Extract(s))
}

func TestExtractLinePrismYieldsSideFace(t *testing.T) {
	// A two-point ring extrudes to a prism with zero-area caps; the
	// largest face is then one of the rectangular sides.
	line := geom.Ring{{X: 0, Y: 0}, {X: 100, Y: 0}}
	s := geom.Extrude(geom.Profile{Outer: line}, geom.FrameXY(), 10)

	p := Extract(s)
	require.NotNil(t, p)
	assert.ElementsMatch(t, []float64{100, 10}, []float64{p.Width, p.Height})
	assert.InDelta(t, 100*10, p.FaceArea, 1e-6)
}

func TestExtractRotatedPanelPreservesShape(t *testing.T) {
	s := geom.NewBox(r3.Vec{}, 600, 90, 20).RotateZ(r3.Vec{}, 0.7)
	p := Extract(s)
	require.NotNil(t, p)
	// The in-plane axes need not align with the panel edges, but the
	// projection must not distort the shape: the enclosed area and the
	// source face area both stay true.
	assert.Len(t, p.Outer, 4)
	assert.InDelta(t, 600*90, p.FaceArea, 1e-6)
	area := p.Outer.SignedArea()
	if area < 0 {
		area = -area
	}
	assert.InDelta(t, 600*90, area, 50)
}
