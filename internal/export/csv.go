package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/StairCut/internal/model"
)

// WriteCutListCSV writes one row per placed part: identity, size,
// sheet and position. Unplaced parts get trailing rows with an empty
// sheet column.
func WriteCutListCSV(w io.Writer, result model.NestResult) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "name", "width_mm", "height_mm", "sheet", "x_mm", "y_mm", "rotated"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for idx := 0; idx < result.SheetCount; idx++ {
		for _, p := range result.Sheets[idx].Parts {
			row := []string{
				strconv.Itoa(p.PartID),
				p.Name,
				formatMM(p.Width),
				formatMM(p.Height),
				strconv.Itoa(idx + 1),
				formatMM(p.X),
				formatMM(p.Y),
				strconv.FormatBool(p.Rotated),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	for _, id := range result.Unpacked {
		row := []string{strconv.Itoa(id), "", "", "", "", "", "", ""}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCutListCSV writes the cut list to a file.
func ExportCutListCSV(path string, result model.NestResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	return WriteCutListCSV(f, result)
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
