// Package profile extracts flat 2D cutting profiles from 3D panel solids.
// The largest face of a panel is taken as its cutting face; its boundary
// loops are walked edge by edge into closed, deduplicated polygons.
package profile

import (
	"math"

	"github.com/piwi3910/StairCut/internal/geom"
	"github.com/piwi3910/StairCut/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extract returns the 2D cutting profile of a panel solid, or nil if no
// usable flat face exists. Failure means "skip this part", not a fatal
// error; callers inspect SkippedEdges to judge extraction quality.
func Extract(s *geom.Solid) *model.Profile2D {
	if s == nil {
		return nil
	}
	faces := s.Faces()
	if len(faces) == 0 {
		return nil
	}

	best := faces[0]
	for _, f := range faces[1:] {
		if f.Area > best.Area {
			best = f
		}
	}

	// Local 2D frame on the face: origin at its center, z along its
	// normal. The in-plane axes are arbitrary but shared by every loop
	// of the face.
	frame := planeFrame(best.Center, best.Normal)

	skipped := 0
	outer := walkWire(best.Outer, frame, &skipped)
	if len(outer) < 3 {
		return nil
	}

	var holes []model.Outline
	for _, inner := range best.Inner {
		loop := walkWire(inner, frame, &skipped)
		if len(loop) >= 3 {
			holes = append(holes, loop)
		}
	}

	// Normalize so the outer bounding box starts at the origin.
	min, max := outer.BoundingBox()
	outer = outer.Translate(-min.X, -min.Y)
	for i, h := range holes {
		holes[i] = h.Translate(-min.X, -min.Y)
	}

	return &model.Profile2D{
		Width:        model.RoundMM(max.X - min.X),
		Height:       model.RoundMM(max.Y - min.Y),
		Outer:        outer,
		Holes:        holes,
		FaceArea:     best.Area,
		SkippedEdges: skipped,
	}
}

// planeFrame builds a frame on the plane through origin with the given
// normal. The reference axis flips when the normal is near-vertical so
// the cross product stays well conditioned.
func planeFrame(origin, normal r3.Vec) geom.Frame {
	n := r3.Unit(normal)
	ref := r3.Vec{Z: 1}
	if math.Abs(r3.Dot(n, ref)) > 0.9 {
		ref = r3.Vec{X: 1}
	}
	x := r3.Unit(r3.Cross(ref, n))
	y := r3.Cross(n, x)
	return geom.Frame{Origin: origin, X: x, Y: y, Z: n}
}

// walkWire traverses a boundary loop edge by edge, projecting each edge's
// start point into the frame and collapsing consecutive duplicates. A
// point that projects to a non-finite coordinate is skipped and counted;
// the walk continues best-effort. After the walk the final edge's end
// point closes the loop if it matches neither the first nor the last
// collected point.
func walkWire(wire geom.Wire, frame geom.Frame, skipped *int) model.Outline {
	var loop model.Outline
	for _, e := range wire {
		p, ok := project(frame, e.Start)
		if !ok {
			*skipped++
			continue
		}
		if n := len(loop); n == 0 || loop[n-1] != p {
			loop = append(loop, p)
		}
	}
	if len(wire) > 0 {
		if end, ok := project(frame, wire[len(wire)-1].End); ok {
			if len(loop) > 0 && end != loop[0] && end != loop[len(loop)-1] {
				loop = append(loop, end)
			}
		}
	}
	return loop
}

func project(frame geom.Frame, p r3.Vec) (model.Point2D, bool) {
	l := frame.ToLocal(p)
	x := model.RoundMM(l.X)
	y := model.RoundMM(l.Y)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return model.Point2D{}, false
	}
	return model.Point2D{X: x, Y: y}, true
}
