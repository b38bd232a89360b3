package stair

import (
	"math"

	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Winder element builders. The winder is a square region of side
// WinderWidth whose steps fan 90 degrees about a pivot at its top-left
// corner: angles sweep from -90 (pointing down the bottom flight) to 0
// (pointing along the top flight). Coordinates here are relative to the
// pivot; the assembly translates them to the global pivot.

const circleSegments = 64

// winderStepRing returns the wedge polygon for one winder step, relative
// to the pivot at (0,0). The outer boundary is rectangular: bottom edge at
// y=-w, right edge at x=w.
func winderStepRing(step, numSteps int, w float64) geom.Ring {
	anglePer := 90.0 / float64(numSteps)
	sa := -90 + float64(step)*anglePer
	ea := -90 + float64(step+1)*anglePer
	a1 := sa * math.Pi / 180
	a2 := ea * math.Pi / 180

	var p1 r2.Vec
	if sa < -45 {
		if math.Abs(sa+90) < 1e-6 {
			p1 = r2.Vec{X: 0, Y: -w}
		} else {
			p1 = r2.Vec{X: -w / math.Tan(a1), Y: -w}
		}
	} else {
		p1 = r2.Vec{X: w, Y: w * math.Tan(a1)}
	}

	var p2 r2.Vec
	if ea <= -45 {
		if math.Abs(ea+45) < 1e-6 {
			p2 = r2.Vec{X: w, Y: -w}
		} else {
			p2 = r2.Vec{X: -w / math.Tan(a2), Y: -w}
		}
	} else {
		p2 = r2.Vec{X: w, Y: w * math.Tan(a2)}
	}

	ring := geom.Ring{{X: 0, Y: 0}, p1}
	if sa < -45 && ea > -45 {
		// The wedge spans the rectangular outer corner.
		ring = append(ring, r2.Vec{X: w, Y: -w})
	}
	return append(ring, p2)
}

// winderOuterRadius returns the distance from the pivot to the rectangular
// outer boundary along the given angle (degrees, in [-90, 0]).
func winderOuterRadius(angleDeg, w float64) float64 {
	a := angleDeg * math.Pi / 180
	if angleDeg < -45 {
		if math.Abs(angleDeg+90) < 1e-6 {
			return w
		}
		return math.Abs(-w / math.Sin(a))
	}
	return math.Abs(w / math.Cos(a))
}

// winderTreadsRisers builds the wedge treads and radial risers for the
// winder. Treads are rotated back slightly about the pivot to create the
// nosing overhang; the inner turning void is cut out of each wedge.
func winderTreadsRisers(c Config, pivot r3.Vec) (treads, risers []*geom.Solid) {
	n := c.WinderSteps
	if n <= 0 {
		return nil, nil
	}
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()
	anglePer := 90.0 / float64(n)

	avgR := c.InnerR + c.Width/2
	nosingAngle := 0.0
	if avgR > 0 {
		nosingAngle = c.Nosing / avgR // radians
	}

	for i := 0; i < n; i++ {
		topZ := baseZ + float64(i+1)*c.Rise

		wedge := geom.Profile{Outer: winderStepRing(i, n, w)}
		void := geom.Profile{Outer: geom.Circle(r2.Vec{}, c.InnerR, circleSegments)}
		cut := largestRegion(wedge.Subtract(void))

		tread := geom.Extrude(cut, geom.FrameXY(), c.TreadThickness)
		tread = tread.RotateZ(r3.Vec{}, -nosingAngle)
		tread = tread.Translate(r3.Vec{X: pivot.X, Y: pivot.Y, Z: topZ - c.TreadThickness})
		treads = append(treads, tread)

		// Radial riser at the step's leading edge.
		riserAngle := -90 + float64(i)*anglePer
		radialLen := winderOuterRadius(riserAngle, w) - c.InnerR
		drop := 0.0
		if i > 0 {
			drop = c.TreadThickness
		}
		riser := geom.NewBox(
			r3.Vec{X: c.InnerR, Y: -c.RiserThickness / 2},
			radialLen, c.RiserThickness, c.Rise+drop)
		riser = riser.RotateZ(r3.Vec{}, riserAngle*math.Pi/180)
		riser = riser.Translate(r3.Vec{X: pivot.X, Y: pivot.Y, Z: baseZ + float64(i)*c.Rise - drop})
		risers = append(risers, riser)
	}
	return treads, risers
}

// winderRibs builds radially fanned soffit former ribs across the turn,
// each clipped exactly to the rectangular outer boundary.
func winderRibs(c Config, pivot r3.Vec) []*geom.Solid {
	if c.WinderSteps <= 0 {
		return nil
	}
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()
	arcLen := (c.InnerR + w) / 2 * math.Pi / 2
	n := int(arcLen/c.RibSpacing) + 1
	if n < 3 {
		n = 3
	}

	ribs := make([]*geom.Solid, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		angleDeg := -90 + t*90
		zSoffit := baseZ + t*float64(c.WinderSteps)*c.Rise - c.Waist
		radialLen := winderOuterRadius(angleDeg, w) - c.InnerR

		rib := geom.NewBox(
			r3.Vec{X: c.InnerR, Y: -c.RibWidth / 2},
			radialLen, c.RibWidth, c.RibDepth)
		rib = rib.RotateZ(r3.Vec{}, angleDeg*math.Pi/180)
		ribs = append(ribs, rib.Translate(r3.Vec{X: pivot.X, Y: pivot.Y, Z: zSoffit}))
	}
	return ribs
}

// winderPlaster builds the plaster soffit under the turn as radial facet
// strips: each strip is a flat panel between two adjacent fan angles,
// tilted to follow the climbing soffit.
func winderPlaster(c Config, pivot r3.Vec) []*geom.Solid {
	if c.WinderSteps <= 0 || c.PlasterThickness <= 0 {
		return nil
	}
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()
	totalRise := float64(c.WinderSteps) * c.Rise
	arcLen := (c.InnerR + w) / 2 * math.Pi / 2
	n := int(arcLen/c.RibSpacing) + 1
	if n < 3 {
		n = 3
	}

	corner := func(t, radius float64) r3.Vec {
		a := (-90 + t*90) * math.Pi / 180
		return r3.Vec{
			X: pivot.X + radius*math.Cos(a),
			Y: pivot.Y + radius*math.Sin(a),
			Z: baseZ + t*totalRise - c.Waist,
		}
	}

	strips := make([]*geom.Solid, 0, n-1)
	for i := 0; i < n-1; i++ {
		t0 := float64(i) / float64(n-1)
		t1 := float64(i+1) / float64(n-1)
		r0 := winderOuterRadius(-90+t0*90, w)
		r1 := winderOuterRadius(-90+t1*90, w)

		p1 := corner(t0, c.InnerR)
		p2 := corner(t0, r0)
		p3 := corner(t1, r1)
		p4 := corner(t1, c.InnerR)

		strip := facetPanel(p1, p2, p3, p4, c.PlasterThickness)
		if strip != nil {
			strips = append(strips, strip)
		}
	}
	return strips
}

// facetPanel builds a thin flat panel through four roughly coplanar
// corners, extruded by thickness along the facet normal. Corners slightly
// off the facet plane are flattened onto it.
func facetPanel(p1, p2, p3, p4 r3.Vec, thickness float64) *geom.Solid {
	xAxis := r3.Sub(p2, p1)
	if r3.Norm(xAxis) == 0 {
		return nil
	}
	xAxis = r3.Unit(xAxis)
	span := r3.Sub(p4, p1)
	normal := r3.Cross(xAxis, span)
	if r3.Norm(normal) == 0 {
		return nil
	}
	normal = r3.Unit(normal)
	yAxis := r3.Cross(normal, xAxis)

	frame := geom.Frame{Origin: p1, X: xAxis, Y: yAxis, Z: normal}
	ring := make(geom.Ring, 0, 4)
	for _, p := range []r3.Vec{p1, p2, p3, p4} {
		l := frame.ToLocal(p)
		ring = append(ring, r2.Vec{X: l.X, Y: l.Y})
	}
	return geom.Extrude(geom.Profile{Outer: ring}, frame, thickness)
}
