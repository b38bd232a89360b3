// Package scarf splits oversized panels into interlocking segments with a
// multi-tooth structural scarf joint. The toothed cut keeps the two
// manufactured halves self-aligning and shear-resistant when reassembled,
// which a flat butt joint would not guarantee.
package scarf

import (
	"fmt"

	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// jointOverlap is the total along-axis depth of the toothed zone.
	jointOverlap = 150.0
	// toothPeriod is the repeat of the tooth pattern across the cut;
	// each tooth occupies half a period.
	toothPeriod = 80.0
	// minVolume discards boolean slivers below this size (mm³).
	minVolume = 1000.0
	// toolMargin oversizes the cutting tool so it always through-cuts.
	toolMargin = 5000.0
)

// Split cuts a panel into interlocking segments when its longest
// bounding-box extent exceeds maxDim. Parts that already fit come back
// unchanged as a single-element slice. Oversized halves are split again
// until everything fits. Segment order is stable: the "kept" half of each
// cut precedes the remainder, so callers can suffix them A, B, C in order.
func Split(part *geom.Solid, maxDim float64) ([]*geom.Solid, error) {
	return split(part, maxDim, 0)
}

func split(part *geom.Solid, maxDim float64, depth int) ([]*geom.Solid, error) {
	box := part.BoundingBox()
	axis, extent := box.LongestAxis()
	if extent <= maxDim {
		return []*geom.Solid{part}, nil
	}
	if depth > 8 {
		return nil, fmt.Errorf("scarf: part still %.1fmm after %d splits", extent, depth)
	}

	a, b, err := cut(part, axis, box)
	if err != nil {
		return nil, err
	}

	var out []*geom.Solid
	for _, half := range [][]*geom.Solid{a, b} {
		for _, seg := range half {
			sub, err := split(seg, maxDim, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}
	return out, nil
}

// cut booleans the part against a toothed tool straddling the midpoint of
// the given world axis. It returns the tool-side fragments and the
// remainder, slivers already discarded.
func cut(part *geom.Solid, axis int, box geom.Box) (a, b []*geom.Solid, err error) {
	var dir r3.Vec
	var mid float64
	switch axis {
	case 0:
		dir = r3.Vec{X: 1}
		mid = (box.Min.X + box.Max.X) / 2
	case 1:
		dir = r3.Vec{Y: 1}
		mid = (box.Min.Y + box.Max.Y) / 2
	default:
		dir = r3.Vec{Z: 1}
		mid = (box.Min.Z + box.Max.Z) / 2
	}

	tool, err := toothProfile(part, dir, mid)
	if err != nil {
		return nil, nil, err
	}

	a, err = part.Intersect(tool)
	if err != nil {
		return nil, nil, fmt.Errorf("scarf: intersect failed: %w", err)
	}
	b, err = part.Subtract(tool)
	if err != nil {
		return nil, nil, fmt.Errorf("scarf: subtract failed: %w", err)
	}
	return filterSlivers(a), filterSlivers(b), nil
}

// toothProfile builds the cutting tool in the part's own profile plane: a
// half-plane whose boundary zigzags through the joint zone, producing
// alternating full-width teeth. dir is the world split axis; mid the
// world coordinate of the split position along it.
func toothProfile(part *geom.Solid, dir r3.Vec, mid float64) (geom.Profile, error) {
	f := part.Frame

	// Project the split axis into the profile plane. A panel whose
	// longest extent runs through its thickness cannot be scarfed.
	d := r2.Vec{X: r3.Dot(dir, f.X), Y: r3.Dot(dir, f.Y)}
	if r2.Norm(d) < 1e-6 {
		return geom.Profile{}, fmt.Errorf("scarf: split axis is normal to the panel face")
	}
	u := r2.Scale(1/r2.Norm(d), d)
	v := r2.Vec{X: -u.Y, Y: u.X}

	// Split position in along-axis profile coordinates. With the axis in
	// the profile plane, a local point (x, y) sits at
	// dot(origin, dir) + x*d.X + y*d.Y along the axis; the midline is
	// where that equals mid.
	base := r3.Dot(f.Origin, dir)
	sMid := (mid - base) / r2.Norm(d)
	sLeft := sMid - jointOverlap/2
	sRight := sMid + jointOverlap/2

	// Tooth band range, oversized well past the profile.
	tMin := -toolMargin
	tMax := toolMargin

	ring := geom.Ring{
		{X: sMid - toolMargin, Y: tMin},
		{X: sLeft, Y: tMin},
	}
	for t := tMin; t < tMax; t += toothPeriod {
		half := toothPeriod / 2
		ring = append(ring,
			r2.Vec{X: sLeft, Y: t + half},
			r2.Vec{X: sRight, Y: t + half},
			r2.Vec{X: sRight, Y: t + toothPeriod},
			r2.Vec{X: sLeft, Y: t + toothPeriod})
	}
	ring = append(ring, r2.Vec{X: sMid - toolMargin, Y: tMax})

	// Map from (along, across) back to local profile coordinates.
	mapped := make(geom.Ring, len(ring))
	for i, p := range ring {
		mapped[i] = r2.Add(r2.Scale(p.X, u), r2.Scale(p.Y, v))
	}
	return geom.Profile{Outer: mapped}, nil
}

func filterSlivers(segments []*geom.Solid) []*geom.Solid {
	out := segments[:0]
	for _, s := range segments {
		if s.Volume() > minVolume {
			out = append(out, s)
		}
	}
	return out
}

// SegmentSuffix returns the re-assembly label for the i-th segment of a
// split part: A, B, C...
func SegmentSuffix(i int) string {
	return string(rune('A' + i%26))
}

// MaxExtent returns the part's longest bounding-box extent, a convenience
// for callers deciding whether a split will occur.
func MaxExtent(part *geom.Solid) float64 {
	_, extent := part.BoundingBox().LongestAxis()
	return extent
}
