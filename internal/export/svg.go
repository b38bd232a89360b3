package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/piwi3910/StairCut/internal/model"
)

const (
	sheetStyle   = "fill:#d2b48c;stroke:#646464;stroke-width:2"
	partStyle    = "fill:#4caf50;fill-opacity:0.7;stroke:#1e1e1e;stroke-width:1"
	rotatedStyle = "fill:#2196f3;fill-opacity:0.7;stroke:#1e1e1e;stroke-width:1"
	holeStyle    = "fill:none;stroke:#c62828;stroke-width:1;stroke-dasharray:8,4"
	captionStyle = "font-family:sans-serif;font-size:30px;fill:#333"
	labelStyle   = "font-family:sans-serif;font-size:18px;fill:#000"
)

// WriteSVG renders a nesting layout as an SVG document: sheets stacked
// vertically, placements as filled polygons, hole loops dashed.
func WriteSVG(w io.Writer, result model.NestResult, stock model.StockSheet) error {
	if result.SheetCount == 0 {
		return fmt.Errorf("no sheets to export")
	}

	totalH := float64(result.SheetCount)*(stock.Height+sheetStackGap) + sheetStackGap
	canvas := svg.New(w)
	canvas.Start(stock.Width+2*sheetStackGap, totalH)

	for idx := 0; idx < result.SheetCount; idx++ {
		offX := sheetStackGap
		offY := sheetStackGap + float64(idx)*(stock.Height+sheetStackGap)
		layout := result.Sheets[idx]

		canvas.Rect(offX, offY, stock.Width, stock.Height, sheetStyle)
		caption := fmt.Sprintf("Sheet %d - %s - %.2f%%", idx+1, result.Algorithm, layout.Efficiency)
		canvas.Text(offX, offY-10, caption, captionStyle)

		for _, p := range layout.Parts {
			style := partStyle
			if p.Rotated {
				style = rotatedStyle
			}
			xs, ys := placementPath(p, p.Outer, offX, offY)
			canvas.Polygon(xs, ys, style)

			for _, hole := range p.Holes {
				hxs, hys := placementPath(p, hole, offX, offY)
				canvas.Polygon(hxs, hys, holeStyle)
			}

			canvas.Text(offX+p.X+5, offY+p.Y+25, p.Name, labelStyle)
		}
	}

	canvas.End()
	return nil
}

// ExportSVG writes the layout to a file.
func ExportSVG(path string, result model.NestResult, stock model.StockSheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()
	return WriteSVG(f, result, stock)
}

// placementPath maps an outline's local points into canvas coordinates,
// swapping local x/y for rotated placements.
func placementPath(p model.Placement, outline model.Outline, offX, offY float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(outline))
	ys := make([]float64, 0, len(outline))
	for _, pt := range outline {
		x, y := pt.X, pt.Y
		if p.Rotated {
			x, y = pt.Y, pt.X
		}
		xs = append(xs, offX+p.X+x)
		ys = append(ys, offY+p.Y+y)
	}
	return xs, ys
}
