package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/pipeline"
	"github.com/piwi3910/StairCut/internal/stair"
)

// Assumed nesting efficiency when estimating sheet counts from raw
// part areas, before a real nesting run.
const estimatedNestingEfficiency = 0.70

// ExportBOM writes a bill of materials workbook: one summary sheet per
// material group plus a full part listing from the assembly manifest.
func ExportBOM(path string, res *pipeline.Result) error {
	if res == nil || len(res.Groups) == 0 {
		return fmt.Errorf("no material groups to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Materials"
	f.SetSheetName("Sheet1", summary)

	headers := []string{"Material", "Thickness (mm)", "Parts", "Volume (L)",
		"Est. Sheets (70%)", "Nested Sheets", "Efficiency (%)", "Offcut (m2)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}

	sheetArea := res.Sheet.Width * res.Sheet.Height
	for i, g := range res.Groups {
		row := i + 2
		var partArea float64
		for _, p := range g.Parts {
			partArea += p.Width * p.Height
		}
		estSheets := 0
		if sheetArea > 0 && partArea > 0 {
			estSheets = int(math.Ceil(partArea / (sheetArea * estimatedNestingEfficiency)))
		}

		var volume float64
		for _, cat := range groupCategories(g.Material) {
			volume += res.Manifest.CategoryVolume(cat)
		}

		setRow(f, summary, row,
			g.Material,
			g.Thickness,
			len(g.Parts),
			math.Round(volume/1e6*100)/100, // mm3 to litres
			estSheets,
			g.Nesting.SheetCount,
			g.Nesting.Efficiency,
			math.Round(model.TotalOffcutArea(g.Offcuts)/1e6*100)/100, // mm2 to m2
		)
	}

	// Full part listing.
	const partsSheet = "Parts"
	f.NewSheet(partsSheet)
	partHeaders := []string{"ID", "Name", "Category", "Width (mm)", "Height (mm)", "Material"}
	for i, h := range partHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(partsSheet, cell, h)
	}
	row := 2
	for _, g := range res.Groups {
		for _, p := range g.Parts {
			setRow(f, partsSheet, row, p.ID, p.Name, p.Category, p.Width, p.Height, g.Material)
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

// groupCategories maps a material group name back to its stair
// categories for volume lookups.
func groupCategories(material string) []stair.Category {
	for _, g := range pipeline.MaterialGroups() {
		if g.Name == material {
			return g.Categories
		}
	}
	return nil
}
