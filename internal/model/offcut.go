package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable rectangular remnant left on a sheet after nesting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetIndex int     `json:"sheetIndex"`
	Material   string  `json:"material,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Area returns the offcut area in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToStockSheet converts an offcut into stock for a later nesting run.
func (o Offcut) ToStockSheet(thickness float64) StockSheet {
	return StockSheet{
		Width:     o.Width,
		Height:    o.Height,
		Material:  o.Material,
		Thickness: thickness,
	}
}

// MinOffcutDimension is the smallest width or height, in mm, for a
// remnant to count as reusable rather than waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the smallest area, in square mm, for a reusable remnant.
const MinOffcutArea = 10000.0

// DetectOffcuts finds the rectangular remnant strips of one sheet: the
// full-height strip right of every placement and the strip below them.
// spacing is the nesting gap, kept clear around placements so the
// remnant edges stay cuttable.
func DetectOffcuts(layout SheetLayout, stock StockSheet, sheetIndex int, spacing float64) []Offcut {
	if len(layout.Parts) == 0 {
		return []Offcut{{
			ID:         shortID(),
			SheetIndex: sheetIndex,
			Material:   stock.Material,
			Width:      stock.Width,
			Height:     stock.Height,
		}}
	}

	var maxRight, maxTop float64
	for _, p := range layout.Parts {
		maxRight = math.Max(maxRight, p.X+p.Width+spacing)
		maxTop = math.Max(maxTop, p.Y+p.Height+spacing)
	}

	var offcuts []Offcut

	rightW := stock.Width - maxRight
	if usableRect(rightW, stock.Height) {
		offcuts = append(offcuts, Offcut{
			ID:         shortID(),
			SheetIndex: sheetIndex,
			Material:   stock.Material,
			X:          maxRight,
			Width:      rightW,
			Height:     stock.Height,
		})
	}

	// Strip above the placements, only up to maxRight so it does not
	// overlap the right strip.
	topH := stock.Height - maxTop
	topW := math.Min(maxRight, stock.Width)
	if usableRect(topW, topH) {
		offcuts = append(offcuts, Offcut{
			ID:         shortID(),
			SheetIndex: sheetIndex,
			Material:   stock.Material,
			Y:          maxTop,
			Width:      topW,
			Height:     topH,
		})
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds remnants across every sheet of a nesting result.
func DetectAllOffcuts(result NestResult, stock StockSheet, spacing float64) []Offcut {
	var all []Offcut
	for idx := 0; idx < result.SheetCount; idx++ {
		all = append(all, DetectOffcuts(result.Sheets[idx], stock, idx, spacing)...)
	}
	return all
}

// TotalOffcutArea sums the remnant areas in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

func usableRect(w, h float64) bool {
	return w >= MinOffcutDimension && h >= MinOffcutDimension && w*h >= MinOffcutArea
}

func shortID() string {
	return uuid.New().String()[:8]
}
