// Package gcode turns nested sheet layouts into CNC router programs and
// parses programs back into structured moves for preview and statistics.
//
// Generated programs use plain metric G-code (G21/G90/G17 with G0/G1
// moves), the dialect GRBL and LinuxCNC controllers accept. Each part is
// cut along its actual profile outline, hole loops before the outer
// contour so the part stays anchored to the stock as long as possible.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/StairCut/internal/model"
)

// Settings control toolpath generation for a nested sheet.
type Settings struct {
	ToolDiameter float64 // mm
	FeedRate     float64 // mm/min for XY cutting moves
	PlungeRate   float64 // mm/min for Z plunges
	SpindleRPM   int
	SafeZ        float64 // retract height above the stock surface, mm
	PassDepth    float64 // material removed per depth pass, mm
	CutThrough   float64 // extra depth below the stock underside, mm
}

// DefaultSettings returns settings suited to a 6 mm compression bit in
// softwood and plywood sheet stock.
func DefaultSettings() Settings {
	return Settings{
		ToolDiameter: 6.0,
		FeedRate:     3000,
		PlungeRate:   800,
		SpindleRPM:   18000,
		SafeZ:        5.0,
		PassDepth:    6.0,
		CutThrough:   0.2,
	}
}

func (s Settings) validate() error {
	if s.ToolDiameter <= 0 {
		return fmt.Errorf("tool diameter must be positive, got %.2f", s.ToolDiameter)
	}
	if s.PassDepth <= 0 {
		return fmt.Errorf("pass depth must be positive, got %.2f", s.PassDepth)
	}
	if s.FeedRate <= 0 || s.PlungeRate <= 0 {
		return fmt.Errorf("feed rates must be positive")
	}
	return nil
}

// Generator produces G-code programs from sheet layouts.
type Generator struct {
	settings Settings
}

// NewGenerator creates a Generator with the given settings.
func NewGenerator(settings Settings) *Generator {
	return &Generator{settings: settings}
}

// GenerateAll produces one program per sheet of the nesting result, in
// sheet order.
func (g *Generator) GenerateAll(result model.NestResult, stock model.StockSheet) ([]string, error) {
	programs := make([]string, 0, result.SheetCount)
	for idx := 0; idx < result.SheetCount; idx++ {
		prog, err := g.GenerateSheet(result.Sheets[idx], stock, idx+1)
		if err != nil {
			return nil, fmt.Errorf("sheet %d: %w", idx+1, err)
		}
		programs = append(programs, prog)
	}
	return programs, nil
}

// GenerateSheet produces a complete program cutting every placement on
// one sheet. sheetNum is 1-based and only appears in comments.
func (g *Generator) GenerateSheet(layout model.SheetLayout, stock model.StockSheet, sheetNum int) (string, error) {
	if err := g.settings.validate(); err != nil {
		return "", err
	}
	if stock.Thickness <= 0 {
		return "", fmt.Errorf("stock thickness must be positive, got %.2f", stock.Thickness)
	}
	if len(layout.Parts) == 0 {
		return "", fmt.Errorf("sheet %d has no placements", sheetNum)
	}

	var b strings.Builder
	g.writeHeader(&b, stock, sheetNum, len(layout.Parts))
	for _, p := range layout.Parts {
		g.writePlacement(&b, p, stock.Thickness)
	}
	g.writeFooter(&b)
	return b.String(), nil
}

func (g *Generator) writeHeader(b *strings.Builder, stock model.StockSheet, sheetNum, partCount int) {
	fmt.Fprintf(b, "( StairCut sheet %d )\n", sheetNum)
	fmt.Fprintf(b, "( stock %.1f x %.1f x %.1f mm", stock.Width, stock.Height, stock.Thickness)
	if stock.Material != "" {
		fmt.Fprintf(b, " %s", stock.Material)
	}
	b.WriteString(" )\n")
	fmt.Fprintf(b, "( tool diameter %.1f mm, %d parts )\n", g.settings.ToolDiameter, partCount)
	b.WriteString("G21 ( millimeters )\n")
	b.WriteString("G90 ( absolute positioning )\n")
	b.WriteString("G17 ( XY plane )\n")
	fmt.Fprintf(b, "G0 Z%s\n", coord(g.settings.SafeZ))
	fmt.Fprintf(b, "M3 S%d\n", g.settings.SpindleRPM)
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("M5\n")
	fmt.Fprintf(b, "G0 Z%s\n", coord(g.settings.SafeZ))
	b.WriteString("G0 X0 Y0\n")
	b.WriteString("M2\n")
}

// writePlacement cuts one placed part: every hole loop first, then the
// outer contour. Falls back to the placed bounding rectangle when the
// placement carries no outline.
func (g *Generator) writePlacement(b *strings.Builder, p model.Placement, thickness float64) {
	fmt.Fprintf(b, "( part %d %s at %s,%s )\n", p.PartID, p.Name, coord(p.X), coord(p.Y))

	for _, hole := range p.Holes {
		g.cutLoop(b, worldLoop(p, hole), thickness, true)
	}

	if len(p.Outer) < 3 {
		rect := model.Outline{
			{X: 0, Y: 0},
			{X: p.Width, Y: 0},
			{X: p.Width, Y: p.Height},
			{X: 0, Y: p.Height},
		}
		// rect is already in placed orientation, skip the rotation swap
		g.cutLoop(b, rect.Translate(p.X, p.Y), thickness, false)
		return
	}
	g.cutLoop(b, worldLoop(p, p.Outer), thickness, false)
}

// cutLoop machines one closed loop in depth passes. inward compensates
// the tool radius toward the loop interior (hole cuts); otherwise the
// tool runs outside the loop (part contours).
func (g *Generator) cutLoop(b *strings.Builder, loop model.Outline, thickness float64, inward bool) {
	toolR := g.settings.ToolDiameter / 2
	dist := toolR
	if inward {
		dist = -toolR
	}
	path := offsetOutline(loop, dist)
	if len(path) < 3 {
		return
	}

	target := thickness + g.settings.CutThrough
	fmt.Fprintf(b, "G0 X%s Y%s\n", coord(path[0].X), coord(path[0].Y))

	depth := 0.0
	for depth < target {
		depth = math.Min(depth+g.settings.PassDepth, target)
		fmt.Fprintf(b, "G1 Z%s F%s\n", coord(-depth), coord(g.settings.PlungeRate))
		for i, pt := range path[1:] {
			if i == 0 {
				fmt.Fprintf(b, "G1 X%s Y%s F%s\n", coord(pt.X), coord(pt.Y), coord(g.settings.FeedRate))
				continue
			}
			fmt.Fprintf(b, "G1 X%s Y%s\n", coord(pt.X), coord(pt.Y))
		}
		fmt.Fprintf(b, "G1 X%s Y%s\n", coord(path[0].X), coord(path[0].Y))
	}
	fmt.Fprintf(b, "G0 Z%s\n", coord(g.settings.SafeZ))
}

// worldLoop maps a part-local loop into sheet coordinates, swapping the
// local axes when the placement is rotated 90 degrees.
func worldLoop(p model.Placement, loop model.Outline) model.Outline {
	out := make(model.Outline, len(loop))
	for i, pt := range loop {
		x, y := pt.X, pt.Y
		if p.Rotated {
			x, y = pt.Y, pt.X
		}
		out[i] = model.Point2D{X: p.X + x, Y: p.Y + y}
	}
	return out
}

// offsetOutline shifts each vertex of a closed loop along the averaged
// outward normal of its two adjacent edges. Positive dist grows the
// loop, negative shrinks it. The loop is normalized to counter-clockwise
// winding first so the sign convention holds regardless of input
// winding.
func offsetOutline(loop model.Outline, dist float64) model.Outline {
	if len(loop) < 3 {
		return loop
	}
	src := loop
	if src.SignedArea() < 0 {
		src = make(model.Outline, len(loop))
		for i, p := range loop {
			src[len(loop)-1-i] = p
		}
	}
	n := len(src)
	out := make(model.Outline, n)
	for i := 0; i < n; i++ {
		prev := src[(i-1+n)%n]
		cur := src[i]
		next := src[(i+1)%n]
		n1x, n1y := edgeNormal(prev, cur)
		n2x, n2y := edgeNormal(cur, next)
		nx, ny := n1x+n2x, n1y+n2y
		l := math.Hypot(nx, ny)
		if l < 1e-9 {
			// degenerate spike, fall back to the outgoing edge normal
			nx, ny, l = n2x, n2y, 1
		}
		out[i] = model.Point2D{X: cur.X + dist*nx/l, Y: cur.Y + dist*ny/l}
	}
	return out
}

// edgeNormal returns the unit outward normal of edge a->b for a
// counter-clockwise loop.
func edgeNormal(a, b model.Point2D) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return 0, 0
	}
	return dy / l, -dx / l
}

func coord(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}
