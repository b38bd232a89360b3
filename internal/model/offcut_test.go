package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offcutStock() StockSheet {
	return StockSheet{Width: 2440, Height: 1220, Material: "ply_18mm", Thickness: 18}
}

func TestDetectOffcutsEmptySheet(t *testing.T) {
	offcuts := DetectOffcuts(SheetLayout{}, offcutStock(), 0, 8)
	require.Len(t, offcuts, 1)
	assert.Equal(t, 2440.0, offcuts[0].Width)
	assert.Equal(t, 1220.0, offcuts[0].Height)
	assert.Equal(t, "ply_18mm", offcuts[0].Material)
	assert.Len(t, offcuts[0].ID, 8)
}

func TestDetectOffcutsRightAndTopStrips(t *testing.T) {
	layout := SheetLayout{Parts: []Placement{
		{PartID: 1, X: 0, Y: 0, Width: 1000, Height: 600},
		{PartID: 2, X: 0, Y: 610, Width: 800, Height: 300},
	}}

	offcuts := DetectOffcuts(layout, offcutStock(), 2, 10)
	require.Len(t, offcuts, 2)

	// sorted largest first: right strip 1430x1220 beats top strip 1010x300
	right := offcuts[0]
	assert.Equal(t, 1010.0, right.X)
	assert.Equal(t, 1430.0, right.Width)
	assert.Equal(t, 1220.0, right.Height)
	assert.Equal(t, 2, right.SheetIndex)

	top := offcuts[1]
	assert.Equal(t, 920.0, top.Y)
	assert.Equal(t, 1010.0, top.Width)
	assert.Equal(t, 300.0, top.Height)
}

func TestDetectOffcutsFullSheetIsWaste(t *testing.T) {
	layout := SheetLayout{Parts: []Placement{
		{PartID: 1, X: 0, Y: 0, Width: 2400, Height: 1180},
	}}
	assert.Empty(t, DetectOffcuts(layout, offcutStock(), 0, 8))
}

func TestDetectOffcutsThinStripRejected(t *testing.T) {
	// Leaves a 30 mm right strip, below MinOffcutDimension.
	layout := SheetLayout{Parts: []Placement{
		{PartID: 1, X: 0, Y: 0, Width: 2402, Height: 1220},
	}}
	assert.Empty(t, DetectOffcuts(layout, offcutStock(), 0, 8))
}

func TestDetectAllOffcuts(t *testing.T) {
	result := NestResult{
		SheetCount: 2,
		Sheets: map[int]SheetLayout{
			0: {Parts: []Placement{{PartID: 1, X: 0, Y: 0, Width: 1000, Height: 1220}}},
			1: {Parts: []Placement{{PartID: 2, X: 0, Y: 0, Width: 2000, Height: 1220}}},
		},
	}

	offcuts := DetectAllOffcuts(result, offcutStock(), 0)
	require.Len(t, offcuts, 2)
	assert.Equal(t, 0, offcuts[0].SheetIndex)
	assert.Equal(t, 1, offcuts[1].SheetIndex)
	assert.InDelta(t, 1440*1220.0+440*1220.0, TotalOffcutArea(offcuts), 1e-6)
}

func TestOffcutToStockSheet(t *testing.T) {
	o := Offcut{Width: 600, Height: 400, Material: "timber_20mm"}
	s := o.ToStockSheet(20)
	assert.Equal(t, 600.0, s.Width)
	assert.Equal(t, 400.0, s.Height)
	assert.Equal(t, 20.0, s.Thickness)
	assert.Equal(t, "timber_20mm", s.Material)
}
