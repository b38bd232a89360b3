package stair

import (
	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// BuildMassing returns the volumetric staircase: one solid per flight and
// one wedge per winder step, bounded below by the soffit line. It is the
// quick preview model and the reference envelope the structural build is
// trimmed against.
func BuildMassing(c Config) []*geom.Solid {
	var solids []*geom.Solid

	if s := flightMass(c, c.BottomSteps, 0); s != nil {
		solids = append(solids, s.Translate(r3.Vec{Y: -c.InnerR}))
	}

	pivot := r3.Vec{X: c.PivotX()}
	solids = append(solids, winderMass(c, pivot)...)

	if s := flightMass(c, c.TopSteps, c.ExtendTop); s != nil {
		s = s.RotateZ(r3.Vec{}, halfPi)
		solids = append(solids, s.Translate(r3.Vec{X: c.PivotX() + c.InnerR, Z: c.TopFlightBaseZ()}))
	}
	return solids
}

const halfPi = 1.5707963267948966

// flightMass is the side profile of one flight: step tops above, soffit
// line below, extended past the bottom step by extendBottom.
func flightMass(c Config, steps int, extendBottom float64) *geom.Solid {
	if steps <= 0 {
		return nil
	}
	length := float64(steps) * c.Going
	topZ := float64(steps) * c.Rise
	slope := c.Rise / c.Going

	ring := geom.Ring{{X: -extendBottom, Y: -extendBottom*slope - c.Waist}}
	cx, cz := 0.0, 0.0
	for i := 0; i < steps; i++ {
		ring = append(ring,
			r2.Vec{X: cx, Y: cz + c.Rise},
			r2.Vec{X: cx + c.Going, Y: cz + c.Rise})
		cx += c.Going
		cz += c.Rise
	}
	ring = append(ring, r2.Vec{X: length, Y: topZ - c.Waist})
	return geom.Extrude(geom.Profile{Outer: ring}, geom.FrameXZ(), c.Width)
}

// winderMass represents the turn as one prism per winder step, from the
// step's soffit to its top, with the inner turning void cut out.
func winderMass(c Config, pivot r3.Vec) []*geom.Solid {
	n := c.WinderSteps
	if n <= 0 {
		return nil
	}
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()

	solids := make([]*geom.Solid, 0, n)
	for i := 0; i < n; i++ {
		wedge := geom.Profile{Outer: winderStepRing(i, n, w)}
		void := geom.Profile{Outer: geom.Circle(r2.Vec{}, c.InnerR, circleSegments)}
		cut := largestRegion(wedge.Subtract(void))

		zBottom := baseZ + float64(i)*c.Rise - c.Waist
		height := c.Rise + c.Waist
		s := geom.Extrude(cut, geom.FrameXY(), height)
		solids = append(solids, s.Translate(r3.Vec{X: pivot.X, Y: pivot.Y, Z: zBottom}))
	}
	return solids
}

// MassingVolume returns the total massing volume in cubic millimetres.
func MassingVolume(c Config) float64 {
	var v float64
	for _, s := range BuildMassing(c) {
		v += s.Volume()
	}
	return v
}
