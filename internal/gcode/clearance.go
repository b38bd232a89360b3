package gcode

import (
	"fmt"

	"github.com/piwi3910/StairCut/internal/model"
)

// IssueKind classifies a clearance problem in a nested layout.
type IssueKind int

const (
	// IssueOffSheet means the radius-compensated contour of a part
	// runs past the stock edge.
	IssueOffSheet IssueKind = iota
	// IssueNeighbors means two compensated contours approach closer
	// than the tool diameter, so one cut would gouge the other part.
	IssueNeighbors
)

// ClearanceIssue describes one toolpath conflict found in a layout.
type ClearanceIssue struct {
	Kind     IssueKind
	Sheet    int // 0-based sheet index
	PartID   int
	PartName string
	// Neighbor fields are set for IssueNeighbors only.
	NeighborID   int
	NeighborName string
}

// CheckClearance inspects a nesting result for conflicts introduced by
// tool radius compensation. The nester guarantees the placed rectangles
// do not touch, but the tool cuts outside each contour: when the
// nesting spacing is smaller than the tool diameter, or a part sits
// flush against the stock edge, the offset toolpath leaves the sheet or
// crosses a neighboring part.
func CheckClearance(result model.NestResult, stock model.StockSheet, settings Settings) []ClearanceIssue {
	toolR := settings.ToolDiameter / 2
	var issues []ClearanceIssue

	for idx := 0; idx < result.SheetCount; idx++ {
		parts := result.Sheets[idx].Parts
		for i, p := range parts {
			if p.X-toolR < 0 || p.Y-toolR < 0 ||
				p.X+p.Width+toolR > stock.Width ||
				p.Y+p.Height+toolR > stock.Height {
				issues = append(issues, ClearanceIssue{
					Kind:     IssueOffSheet,
					Sheet:    idx,
					PartID:   p.PartID,
					PartName: p.Name,
				})
			}
			for _, q := range parts[i+1:] {
				if expandedOverlap(p, q, toolR) {
					issues = append(issues, ClearanceIssue{
						Kind:         IssueNeighbors,
						Sheet:        idx,
						PartID:       p.PartID,
						PartName:     p.Name,
						NeighborID:   q.PartID,
						NeighborName: q.Name,
					})
				}
			}
		}
	}
	return issues
}

// expandedOverlap reports whether the bounding boxes of two placements,
// each grown by the tool radius, intersect. That is the condition for
// the gap between the parts being smaller than the tool diameter.
func expandedOverlap(p, q model.Placement, toolR float64) bool {
	return p.X-toolR < q.X+q.Width+toolR &&
		q.X-toolR < p.X+p.Width+toolR &&
		p.Y-toolR < q.Y+q.Height+toolR &&
		q.Y-toolR < p.Y+p.Height+toolR
}

// FormatClearanceWarnings renders issues as log-ready messages.
func FormatClearanceWarnings(issues []ClearanceIssue) []string {
	warnings := make([]string, 0, len(issues))
	for _, is := range issues {
		switch is.Kind {
		case IssueOffSheet:
			warnings = append(warnings, fmt.Sprintf(
				"sheet %d: toolpath for part %d %q runs past the stock edge",
				is.Sheet+1, is.PartID, is.PartName))
		case IssueNeighbors:
			warnings = append(warnings, fmt.Sprintf(
				"sheet %d: parts %d %q and %d %q sit closer than the tool diameter",
				is.Sheet+1, is.PartID, is.PartName, is.NeighborID, is.NeighborName))
		}
	}
	return warnings
}
