package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/StairCut/internal/model"
)

func squareOutline(size float64) model.Outline {
	return model.Outline{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}
}

func testStock() model.StockSheet {
	return model.StockSheet{Width: 2440, Height: 1220, Material: "ply_18mm", Thickness: 18}
}

func TestGenerateSheetBasicProgram(t *testing.T) {
	layout := model.SheetLayout{
		Parts: []model.Placement{{
			PartID: 7, Name: "treads_1",
			X: 50, Y: 50, Width: 100, Height: 100,
			Outer: squareOutline(100),
		}},
	}

	g := NewGenerator(DefaultSettings())
	prog, err := g.GenerateSheet(layout, testStock(), 1)
	require.NoError(t, err)

	assert.Contains(t, prog, "G21 ( millimeters )")
	assert.Contains(t, prog, "G90 ( absolute positioning )")
	assert.Contains(t, prog, "M3 S18000")
	assert.Contains(t, prog, "( part 7 treads_1 at 50.000,50.000 )")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prog), "M2"))

	// Outer contour offset outward by the 3 mm tool radius. At a square
	// corner the averaged normal points diagonally, so each axis moves
	// by 3/sqrt(2) = 2.121 mm.
	assert.Contains(t, prog, "G0 X47.879 Y47.879")

	// 18 mm stock with 0.2 mm cut-through at 6 mm passes needs 4 plunges.
	assert.Equal(t, 4, strings.Count(prog, "G1 Z-"))
	assert.Contains(t, prog, "G1 Z-18.200 F800.000")
}

func TestGenerateSheetCutsHolesFirst(t *testing.T) {
	hole := model.Outline{
		{X: 20, Y: 20}, {X: 40, Y: 20}, {X: 40, Y: 40}, {X: 20, Y: 40},
	}
	layout := model.SheetLayout{
		Parts: []model.Placement{{
			PartID: 1, Name: "stringers_1",
			X: 0, Y: 0, Width: 100, Height: 100,
			Outer: squareOutline(100),
			Holes: []model.Outline{hole},
		}},
	}

	g := NewGenerator(DefaultSettings())
	prog, err := g.GenerateSheet(layout, testStock(), 1)
	require.NoError(t, err)

	// Hole contour offset inward: corner (20,20) moves to (22.121,22.121).
	holeStart := strings.Index(prog, "X22.121 Y22.121")
	outerStart := strings.Index(prog, "X-2.121 Y-2.121")
	require.Greater(t, holeStart, 0)
	require.Greater(t, outerStart, 0)
	assert.Less(t, holeStart, outerStart, "hole must be cut before the outer contour")
}

func TestGenerateSheetRotatedPlacement(t *testing.T) {
	// 200x100 part rotated: placed as 100x200 at (10, 10).
	layout := model.SheetLayout{
		Parts: []model.Placement{{
			PartID: 2, Name: "risers_1",
			X: 10, Y: 10, Width: 100, Height: 200, Rotated: true,
			Outer: model.Outline{
				{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
			},
		}},
	}

	g := NewGenerator(DefaultSettings())
	prog, err := g.GenerateSheet(layout, testStock(), 1)
	require.NoError(t, err)

	stats := Summarize(Parse(prog))
	assert.InDelta(t, 10+100+2.121, stats.MaxX, 0.01)
	assert.InDelta(t, 10+200+2.121, stats.MaxY, 0.01)
}

func TestGenerateSheetRectFallback(t *testing.T) {
	layout := model.SheetLayout{
		Parts: []model.Placement{{
			PartID: 3, Name: "imported",
			X: 100, Y: 100, Width: 50, Height: 80,
		}},
	}

	g := NewGenerator(DefaultSettings())
	prog, err := g.GenerateSheet(layout, testStock(), 1)
	require.NoError(t, err)
	assert.Contains(t, prog, "G0 X97.879 Y97.879")
}

func TestGenerateSheetErrors(t *testing.T) {
	layout := model.SheetLayout{
		Parts: []model.Placement{{PartID: 1, Width: 10, Height: 10, Outer: squareOutline(10)}},
	}

	g := NewGenerator(DefaultSettings())
	_, err := g.GenerateSheet(layout, model.StockSheet{Width: 2440, Height: 1220}, 1)
	assert.ErrorContains(t, err, "thickness")

	_, err = g.GenerateSheet(model.SheetLayout{}, testStock(), 1)
	assert.ErrorContains(t, err, "no placements")

	bad := DefaultSettings()
	bad.PassDepth = 0
	_, err = NewGenerator(bad).GenerateSheet(layout, testStock(), 1)
	assert.ErrorContains(t, err, "pass depth")
}

func TestGenerateAll(t *testing.T) {
	place := func(id int) model.Placement {
		return model.Placement{
			PartID: id, Name: "part",
			X: 10, Y: 10, Width: 100, Height: 100,
			Outer: squareOutline(100),
		}
	}
	result := model.NestResult{
		SheetCount: 2,
		Sheets: map[int]model.SheetLayout{
			0: {Parts: []model.Placement{place(1)}},
			1: {Parts: []model.Placement{place(2)}},
		},
	}

	g := NewGenerator(DefaultSettings())
	programs, err := g.GenerateAll(result, testStock())
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Contains(t, programs[0], "( StairCut sheet 1 )")
	assert.Contains(t, programs[1], "( StairCut sheet 2 )")
}

func TestOffsetOutlineGrowsAndShrinks(t *testing.T) {
	square := squareOutline(10)

	grown := offsetOutline(square, 1)
	gmin, gmax := grown.BoundingBox()
	assert.InDelta(t, -0.707, gmin.X, 0.001)
	assert.InDelta(t, 10.707, gmax.Y, 0.001)

	shrunk := offsetOutline(square, -1)
	smin, smax := shrunk.BoundingBox()
	assert.InDelta(t, 0.707, smin.X, 0.001)
	assert.InDelta(t, 9.293, smax.X, 0.001)
}

func TestOffsetOutlineNormalizesWinding(t *testing.T) {
	ccw := squareOutline(10)
	cw := make(model.Outline, len(ccw))
	for i, p := range ccw {
		cw[len(ccw)-1-i] = p
	}

	gmin1, gmax1 := offsetOutline(ccw, 2).BoundingBox()
	gmin2, gmax2 := offsetOutline(cw, 2).BoundingBox()
	assert.InDelta(t, gmin1.X, gmin2.X, 1e-9)
	assert.InDelta(t, gmax1.Y, gmax2.Y, 1e-9)
}
