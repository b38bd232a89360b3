package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutlineBoundingBox(t *testing.T) {
	o := Outline{{X: 10, Y: 5}, {X: -3, Y: 20}, {X: 7, Y: -8}}
	min, max := o.BoundingBox()
	assert.Equal(t, Point2D{X: -3, Y: -8}, min)
	assert.Equal(t, Point2D{X: 10, Y: 20}, max)

	min, max = Outline{}.BoundingBox()
	assert.Equal(t, Point2D{}, min)
	assert.Equal(t, Point2D{}, max)
}

func TestOutlineTranslate(t *testing.T) {
	o := Outline{{X: 1, Y: 2}, {X: 3, Y: 4}}
	moved := o.Translate(10, -2)
	assert.Equal(t, Outline{{X: 11, Y: 0}, {X: 13, Y: 2}}, moved)
	// original untouched
	assert.Equal(t, 1.0, o[0].X)
}

func TestOutlineSignedArea(t *testing.T) {
	ccw := Outline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 100.0, ccw.SignedArea(), 1e-9)

	cw := Outline{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	assert.InDelta(t, -100.0, cw.SignedArea(), 1e-9)

	assert.Zero(t, Outline{{X: 0, Y: 0}, {X: 1, Y: 1}}.SignedArea())
}

func TestPartFits(t *testing.T) {
	p := Part{Width: 2000, Height: 400}
	assert.True(t, p.Fits(2440, 1220))
	assert.True(t, p.Fits(400, 2000), "rotated fit")
	assert.False(t, p.Fits(1220, 300))
}

func TestPlacementOverlaps(t *testing.T) {
	a := Placement{X: 0, Y: 0, Width: 100, Height: 100}
	b := Placement{X: 50, Y: 50, Width: 100, Height: 100}
	c := Placement{X: 100, Y: 0, Width: 100, Height: 100}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	// touching edges do not overlap
	assert.False(t, a.Overlaps(c))
}

func TestNestResultPlacedCount(t *testing.T) {
	r := NestResult{
		SheetCount: 2,
		Sheets: map[int]SheetLayout{
			0: {Parts: []Placement{{PartID: 1}, {PartID: 2}}},
			1: {Parts: []Placement{{PartID: 3}}},
		},
	}
	assert.Equal(t, 3, r.PlacedCount())
	assert.Zero(t, NestResult{}.PlacedCount())
}

func TestRoundMM(t *testing.T) {
	assert.Equal(t, 1.23, RoundMM(1.2349))
	assert.Equal(t, 1.24, RoundMM(1.2351))
	assert.Equal(t, -0.5, RoundMM(-0.5001))
}
