// Package importer reads 2D part profiles from DXF files so hand-drawn
// panels can join a nesting run alongside generated staircase parts.
package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/StairCut/internal/model"
)

// Result holds the parts recovered from a DXF file plus any problems
// encountered on the way.
type Result struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// segment is a line between two points, used when chaining loose LINE
// and ARC entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

const (
	chainTolerance = 0.01 // mm, endpoint snap distance
	circleFacets   = 64
	arcFacets      = 32
)

// ImportDXF reads a DXF file. Each closed shape (LWPOLYLINE, CIRCLE,
// or a chain of connected LINEs and ARCs) becomes one Part with its
// outline normalized to the origin. Part ids are assigned sequentially
// from 1; callers merging imports into a larger run renumber them.
func ImportDXF(path string) Result {
	res := Result{}

	drawing, err := dxf.Open(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return res
	}

	ents := drawing.Entities()
	if len(ents) == 0 {
		res.Errors = append(res.Errors, "DXF file contains no entities")
		return res
	}

	var outlines []model.Outline
	var segments []segment

	for _, ent := range ents {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				res.Warnings = append(res.Warnings,
					"skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleOutline(e, circleFacets))

		case *entity.Arc:
			pts := arcPoints(e, arcFacets)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	for _, chained := range chainSegments(segments, chainTolerance) {
		if len(chained) >= 3 {
			outlines = append(outlines, chained)
		}
	}

	if len(outlines) == 0 {
		res.Errors = append(res.Errors, "no closed shapes found in DXF file")
		return res
	}

	for _, outline := range outlines {
		normalized := normalizeOutline(outline)
		min, max := normalized.BoundingBox()
		width := max.X - min.X
		height := max.Y - min.Y

		if width < 0.01 || height < 0.01 {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("skipped degenerate shape (%.2f x %.2f mm)", width, height))
			continue
		}

		id := len(res.Parts) + 1
		res.Parts = append(res.Parts, model.Part{
			ID:     id,
			Name:   fmt.Sprintf("dxf_%d", id),
			Width:  model.RoundMM(width),
			Height: model.RoundMM(height),
			Outer:  normalized,
		})
	}

	return res
}

// lwPolylineOutline converts an LWPOLYLINE to an outline. Bulge values
// on vertices interpolate arc segments.
func lwPolylineOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point2D{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := model.Point2D{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, arcFacets)
			// All but the last point; the next vertex closes the arc.
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints interpolates the arc defined by two endpoints and a
// DXF bulge factor (tangent of a quarter of the included angle).
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, facets int) model.Outline {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return model.Outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Arc center sits on the perpendicular through the chord midpoint.
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)

	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	var pts model.Outline
	for i := 0; i <= facets; i++ {
		t := float64(i) / float64(facets)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleOutline approximates a circle as a regular polygon.
func circleOutline(c *entity.Circle, facets int) model.Outline {
	outline := make(model.Outline, facets)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < facets; i++ {
		angle := 2 * math.Pi * float64(i) / float64(facets)
		outline[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return outline
}

// arcPoints converts an ARC entity to a polyline.
func arcPoints(a *entity.Arc, facets int) []model.Point2D {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point2D, facets+1)
	for i := 0; i <= facets; i++ {
		t := float64(i) / float64(facets)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// chainSegments joins loose segments into closed outlines. Endpoints
// within tolerance of each other count as connected.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
		}

		if len(chain) >= 3 {
			outlines = append(outlines, model.Outline(chain))
		}
	}

	// Largest shapes first, for stable part numbering.
	sort.Slice(outlines, func(i, j int) bool {
		return math.Abs(outlines[i].SignedArea()) > math.Abs(outlines[j].SignedArea())
	})

	return outlines
}

func pointsClose(a, b model.Point2D, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// normalizeOutline translates the outline so its bounding box starts
// at the origin.
func normalizeOutline(o model.Outline) model.Outline {
	if len(o) == 0 {
		return o
	}
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}
