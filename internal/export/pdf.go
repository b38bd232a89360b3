// Package export writes nesting layouts and bills of materials to
// manufacturing file formats: DXF and SVG for the cutting table, CSV
// cut lists, XLSX BOM, PDF sheet diagrams and QR part labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StairCut/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders a nesting result as a PDF: one page per stock
// sheet with the placed parts drawn to scale, followed by a summary
// page.
func ExportPDF(path string, result model.NestResult, stock model.StockSheet) error {
	if result.SheetCount == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for idx := 0; idx < result.SheetCount; idx++ {
		pdf.AddPage()
		renderSheetPage(pdf, result.Sheets[idx], stock, idx+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, stock)

	return pdf.OutputFileAndClose(path)
}

func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetLayout, stock model.StockSheet, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d (%.0f x %.0f mm)", sheetNum, stock.Width, stock.Height)
	if stock.Material != "" {
		title = fmt.Sprintf("Sheet %d: %s (%.0f x %.0f mm)", sheetNum, stock.Material, stock.Width, stock.Height)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Efficiency: %.2f%%", len(sheet.Parts), sheet.Efficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/stock.Width, drawHeight/stock.Height)
	canvasW := stock.Width * scale
	canvasH := stock.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock sheet background.
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Parts {
		col := partColors[i%len(partColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Hole loops drawn in the sheet background color.
		for _, hole := range p.Holes {
			hMin, hMax := hole.BoundingBox()
			pdf.SetFillColor(210, 180, 140)
			hx, hy := hMin.X, hMin.Y
			if p.Rotated {
				hx, hy = hMin.Y, hMin.X
			}
			pdf.Rect(px+hx*scale, py+hy*scale, (hMax.X-hMin.X)*scale, (hMax.Y-hMin.Y)*scale, "F")
		}

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Name
			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, stock, scale, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the
// sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockSheet, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", stock.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts under the
// sheet diagram.
func drawPartsLegend(pdf *fpdf.Fpdf, sheet model.SheetLayout, startY float64) {
	if len(sheet.Parts) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sheet.Parts {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Name, p.Width, p.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, result model.NestResult, stock model.StockSheet) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Algorithm", result.Algorithm},
		{"Sheets Used", fmt.Sprintf("%d", result.SheetCount)},
		{"Overall Efficiency", fmt.Sprintf("%.2f%%", result.Efficiency)},
		{"Parts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Parts", fmt.Sprintf("%d", len(result.Unpacked))},
		{"Stock Sheet", fmt.Sprintf("%.0f x %.0f mm", stock.Width, stock.Height)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-sheet breakdown table.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 40, 45}
	headers := []string{"Sheet", "Parts", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for idx := 0; idx < result.SheetCount; idx++ {
		sheet := result.Sheets[idx]
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", idx+1),
			fmt.Sprintf("%d", len(sheet.Parts)),
			fmt.Sprintf("%.2f%%", sheet.Efficiency),
		}

		if idx%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unpacked) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range result.Unpacked {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- part id %d (exceeds stock size)", id), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StairCut", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a part rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
