package stair

import (
	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Straight-flight element builders. A flight is built at a local origin:
// it climbs along +X and its width extends from Y=0 down to Y=-width, so
// the Y=0 edge is the inner (wall) side. The assembly translates and
// rotates the finished elements into place.

// flightTreadsRisers returns the individual tread and riser panels for a
// straight flight. Treads overhang the riser below them by the nosing.
func flightTreadsRisers(c Config, steps int) (treads, risers []*geom.Solid) {
	for i := 0; i < steps; i++ {
		x0 := float64(i) * c.Going
		topZ := float64(i+1) * c.Rise

		tread := geom.NewBox(
			r3.Vec{X: x0 - c.Nosing, Y: -c.Width, Z: topZ - c.TreadThickness},
			c.Going+c.Nosing, c.Width, c.TreadThickness)
		treads = append(treads, tread)

		// Risers after the first drop by the tread thickness so they meet
		// the tread below.
		drop := 0.0
		if i > 0 {
			drop = c.TreadThickness
		}
		riser := geom.NewBox(
			r3.Vec{X: x0, Y: -c.Width, Z: float64(i)*c.Rise - drop},
			c.RiserThickness, c.Width, c.Rise)
		risers = append(risers, riser)
	}
	return treads, risers
}

// sawtoothProfile builds the stepped stringer cross-section in the XZ
// plane: step tops along the climb, with the lower boundary a parallel
// sawtooth offset down by depth.
func sawtoothProfile(c Config, steps int, depth float64) geom.Profile {
	length := float64(steps) * c.Going
	topZ := float64(steps) * c.Rise

	ring := geom.Ring{{X: 0, Y: -depth}}
	cx, cz := 0.0, 0.0
	for i := 0; i < steps; i++ {
		ring = append(ring,
			r2.Vec{X: cx, Y: cz + c.Rise},
			r2.Vec{X: cx + c.Going, Y: cz + c.Rise})
		cx += c.Going
		cz += c.Rise
	}
	ring = append(ring, r2.Vec{X: length, Y: topZ - depth})
	return geom.Profile{Outer: ring}
}

// notchedProfile routs the tread and riser housings out of a sawtooth
// cross-section, so the skin panels recess into the stringer by exactly
// their thickness.
func notchedProfile(c Config, steps int, depth float64) geom.Profile {
	profile := sawtoothProfile(c, steps, depth)
	for i := 0; i < steps; i++ {
		x0 := float64(i) * c.Going
		z0 := float64(i) * c.Rise
		topZ := float64(i+1) * c.Rise

		treadCut := geom.Rect(x0-c.Nosing, topZ-c.TreadThickness, x0+c.Going, topZ)
		profile = largestRegion(profile.Subtract(treadCut))

		drop := 0.0
		if i > 0 {
			drop = c.TreadThickness
		}
		riserCut := geom.Rect(x0, z0-drop, x0+c.RiserThickness, z0+c.Rise)
		profile = largestRegion(profile.Subtract(riserCut))
	}
	return profile
}

// largestRegion keeps the dominant fragment of a boolean result. Housing
// cuts never sever the stringer, so smaller fragments are slivers.
func largestRegion(regions []geom.Profile) geom.Profile {
	best := geom.Profile{}
	for _, r := range regions {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best
}

// flightStringer builds the inner wall stringer for a straight flight,
// notched for treads and risers, occupying Y in [-thickness, 0].
func flightStringer(c Config, steps int) *geom.Solid {
	profile := notchedProfile(c, steps, c.StringerDepth)
	return geom.Extrude(profile, geom.FrameXZ(), c.StringerWidth)
}

// flightCarriages builds the internal bearer beams, evenly spaced across
// the width. Carriages carry circular lightening holes along the climb to
// save material and give services a route through.
func flightCarriages(c Config, steps int) []*geom.Solid {
	if steps <= 0 {
		return nil
	}
	n := c.CarriageCount()
	profile := notchedProfile(c, steps, c.CarriageDepth)
	for i := 0; i < steps; i++ {
		hole := geom.Circle(r2.Vec{
			X: (float64(i) + 0.5) * c.Going,
			Y: (float64(i) + 0.5) * c.Rise - c.CarriageDepth/2,
		}, c.CarriageDepth/6, 32)
		profile.Holes = append(profile.Holes, hole)
	}

	carriages := make([]*geom.Solid, 0, n)
	for i := 0; i < n; i++ {
		frac := float64(i+1) / float64(n+1)
		yPos := -c.Width*frac + c.CarriageWidth/2
		beam := geom.Extrude(profile, geom.FrameXZ(), c.CarriageWidth)
		carriages = append(carriages, beam.Translate(r3.Vec{Y: yPos}))
	}
	return carriages
}

// flightRibs builds the soffit former ribs, perpendicular to the flight
// direction, sitting on the soffit line (waist below the step corners).
func flightRibs(c Config, steps int) []*geom.Solid {
	if steps <= 0 {
		return nil
	}
	length := float64(steps) * c.Going
	slope := c.Rise / c.Going
	n := int(length/c.RibSpacing) + 1
	if n < 2 {
		n = 2
	}
	ribs := make([]*geom.Solid, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i) * length / float64(n-1)
		zSoffit := x*slope - c.Waist
		rib := geom.NewBox(
			r3.Vec{X: x - c.RibWidth/2, Y: -c.Width, Z: zSoffit},
			c.RibWidth, c.Width, c.RibDepth)
		ribs = append(ribs, rib)
	}
	return ribs
}

// flightPlaster builds the plaster soffit panel for a straight flight: a
// thin parallelogram following the soffit line, spanning the full width.
func flightPlaster(c Config, steps int) *geom.Solid {
	if steps <= 0 || c.PlasterThickness <= 0 {
		return nil
	}
	length := float64(steps) * c.Going
	slope := c.Rise / c.Going
	z0 := -c.Waist
	z1 := length*slope - c.Waist
	profile := geom.Profile{Outer: geom.Ring{
		{X: 0, Y: z0},
		{X: length, Y: z1},
		{X: length, Y: z1 + c.PlasterThickness},
		{X: 0, Y: z0 + c.PlasterThickness},
	}}
	return geom.Extrude(profile, geom.FrameXZ(), c.Width)
}
