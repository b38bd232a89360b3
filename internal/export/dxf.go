package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/StairCut/internal/model"
)

// Vertical gap between stacked sheets in the drawing.
const sheetStackGap = 100.0

// ExportDXF writes a nesting layout as a DXF drawing. Sheets stack
// vertically with a gap; each placement's outer boundary and hole
// loops are closed polylines on their own layers, with a text label at
// the part position.
func ExportDXF(path string, result model.NestResult, stock model.StockSheet) error {
	if result.SheetCount == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()
	d.AddLayer("SHEETS", color.Yellow, table.LT_CONTINUOUS, true)
	d.AddLayer("PARTS", color.Green, table.LT_CONTINUOUS, false)
	d.AddLayer("HOLES", color.Red, table.LT_CONTINUOUS, false)
	d.AddLayer("LABELS", color.Cyan, table.LT_CONTINUOUS, false)

	for idx := 0; idx < result.SheetCount; idx++ {
		offY := float64(idx) * (stock.Height + sheetStackGap)

		d.ChangeLayer("SHEETS")
		d.LwPolyline(true,
			[]float64{0, offY},
			[]float64{stock.Width, offY},
			[]float64{stock.Width, offY + stock.Height},
			[]float64{0, offY + stock.Height})

		d.ChangeLayer("LABELS")
		caption := fmt.Sprintf("Sheet %d - %s - %.2f%%",
			idx+1, result.Algorithm, result.Sheets[idx].Efficiency)
		d.Text(caption, 0, offY+stock.Height+20, 0, 30)

		for _, p := range result.Sheets[idx].Parts {
			d.ChangeLayer("PARTS")
			d.LwPolyline(true, placementVertices(p, p.Outer, offY)...)

			d.ChangeLayer("HOLES")
			for _, hole := range p.Holes {
				d.LwPolyline(true, placementVertices(p, hole, offY)...)
			}

			d.ChangeLayer("LABELS")
			d.Text(p.Name, p.X+5, offY+p.Y+5, 0, 15)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

// placementVertices maps an outline's local points into sheet
// coordinates. Rotated placements swap local x/y.
func placementVertices(p model.Placement, outline model.Outline, offY float64) [][]float64 {
	verts := make([][]float64, 0, len(outline))
	for _, pt := range outline {
		x, y := pt.X, pt.Y
		if p.Rotated {
			x, y = pt.Y, pt.X
		}
		verts = append(verts, []float64{p.X + x, offY + p.Y + y})
	}
	return verts
}

// ExportProfilesDXF writes raw part profiles on a flat grid, five per
// row with 1000 mm pitch, for inspection before nesting.
func ExportProfilesDXF(path string, parts []model.Part) error {
	if len(parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	const (
		gridPitch = 1000.0
		perRow    = 5
	)

	d := dxf.NewDrawing()
	d.AddLayer("PROFILES", color.Green, table.LT_CONTINUOUS, true)
	d.AddLayer("HOLES", color.Red, table.LT_CONTINUOUS, false)
	d.AddLayer("LABELS", color.Cyan, table.LT_CONTINUOUS, false)

	for i, part := range parts {
		offX := float64(i%perRow) * gridPitch
		offY := float64(i/perRow) * gridPitch

		d.ChangeLayer("PROFILES")
		d.LwPolyline(true, outlineVertices(part.Outer, offX, offY)...)

		d.ChangeLayer("HOLES")
		for _, hole := range part.Holes {
			d.LwPolyline(true, outlineVertices(hole, offX, offY)...)
		}

		d.ChangeLayer("LABELS")
		d.Text(part.Name, offX, offY-40, 0, 25)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

func outlineVertices(outline model.Outline, offX, offY float64) [][]float64 {
	verts := make([][]float64, 0, len(outline))
	for _, pt := range outline {
		verts = append(verts, []float64{offX + pt.X, offY + pt.Y})
	}
	return verts
}
