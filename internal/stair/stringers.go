package stair

import (
	"math"

	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Corner stringer builders. The winder's rectangular outer corner is
// carried by two long stringers running the full length of each outer
// edge: one under the bottom flight and the winder's bottom edge, one
// under the winder's right edge and the top flight. Their stepped
// profiles are computed directly from the step geometry each edge sees,
// then routed with tread and riser housings like the flight stringers.

// stepInterval is one step's footprint along a stringer edge: the
// along-edge span and the step's top height.
type stepInterval struct {
	from, to float64
	topZ     float64
}

// steppedBandProfile builds a stringer cross-section from step intervals:
// the top follows the step tops, the bottom runs along the pitch, one
// diagonal per step through the trailing top corners dropped by depth.
// Measuring depth at the trailing corners keeps the band at full depth
// under every leading-edge housing cut; a stepped bottom would pinch to
// zero height at each corner whenever the rise reaches the band depth.
func steppedBandProfile(intervals []stepInterval, depth float64) geom.Profile {
	ring := make(geom.Ring, 0, 3*len(intervals)+1)
	for _, iv := range intervals {
		ring = append(ring,
			r2.Vec{X: iv.from, Y: iv.topZ},
			r2.Vec{X: iv.to, Y: iv.topZ})
	}
	for i := len(intervals) - 1; i >= 0; i-- {
		iv := intervals[i]
		ring = append(ring, r2.Vec{X: iv.to, Y: iv.topZ - depth})
	}
	first := intervals[0]
	return geom.Profile{Outer: append(ring, r2.Vec{X: first.from, Y: first.topZ - depth})}
}

// winderBottomEdgeIntervals returns, pivot-relative, the X spans where
// each winder step meets the bottom outer edge (y = -w).
func winderBottomEdgeIntervals(c Config) []stepInterval {
	n := c.WinderSteps
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()
	anglePer := 90.0 / float64(n)

	var out []stepInterval
	for i := 0; i < n; i++ {
		sa := -90 + float64(i)*anglePer
		ea := -90 + float64(i+1)*anglePer
		if sa >= -45 {
			break
		}
		from := 0.0
		if math.Abs(sa+90) >= 1e-6 {
			from = -w / math.Tan(sa*math.Pi/180)
		}
		to := w
		if ea <= -45 {
			to = -w / math.Tan(ea*math.Pi/180)
		}
		out = append(out, stepInterval{from: from, to: to, topZ: baseZ + float64(i+1)*c.Rise})
	}
	return out
}

// winderRightEdgeIntervals returns, pivot-relative, the Y spans where
// each winder step meets the right outer edge (x = w).
func winderRightEdgeIntervals(c Config) []stepInterval {
	n := c.WinderSteps
	w := c.WinderWidth()
	baseZ := c.WinderBaseZ()
	anglePer := 90.0 / float64(n)

	var out []stepInterval
	for i := 0; i < n; i++ {
		sa := -90 + float64(i)*anglePer
		ea := -90 + float64(i+1)*anglePer
		if ea <= -45 {
			continue
		}
		from := -w
		if sa >= -45 {
			from = w * math.Tan(sa*math.Pi/180)
		}
		to := w * math.Tan(ea*math.Pi/180)
		out = append(out, stepInterval{from: from, to: to, topZ: baseZ + float64(i+1)*c.Rise})
	}
	return out
}

// bottomOuterStringer runs along the outer edge y = -WinderWidth, under
// the bottom flight and the winder's bottom edge.
func bottomOuterStringer(c Config) *geom.Solid {
	var intervals []stepInterval
	for i := 0; i < c.BottomSteps; i++ {
		intervals = append(intervals, stepInterval{
			from: float64(i) * c.Going,
			to:   float64(i+1) * c.Going,
			topZ: float64(i+1) * c.Rise,
		})
	}
	for _, iv := range winderBottomEdgeIntervals(c) {
		iv.from += c.PivotX()
		iv.to += c.PivotX()
		intervals = append(intervals, iv)
	}
	if len(intervals) == 0 {
		return nil
	}

	profile := steppedBandProfile(intervals, c.StringerDepth)
	profile = routHousings(profile, c, intervals, c.BottomSteps, 0)

	// Rout the first winder riser, which crosses this edge square-on at
	// the pivot.
	if c.WinderSteps > 0 {
		cut := geom.Rect(
			c.PivotX()-c.RiserThickness/2, c.WinderBaseZ()-c.TreadThickness,
			c.PivotX()+c.RiserThickness/2, c.WinderBaseZ()+c.Rise)
		profile = largestRegion(profile.Subtract(cut))
	}

	frame := geom.FrameXZ()
	frame.Origin = r3.Vec{Y: -c.WinderWidth() + c.StringerWidth}
	return geom.Extrude(profile, frame, c.StringerWidth)
}

// rightOuterStringer runs along the outer edge x = PivotX + WinderWidth,
// under the winder's right edge and the top flight.
func rightOuterStringer(c Config) *geom.Solid {
	var intervals []stepInterval
	for _, iv := range winderRightEdgeIntervals(c) {
		intervals = append(intervals, iv)
	}
	topBase := c.TopFlightBaseZ()
	for j := 0; j < c.TopSteps; j++ {
		intervals = append(intervals, stepInterval{
			from: float64(j) * c.Going,
			to:   float64(j+1) * c.Going,
			topZ: topBase + float64(j+1)*c.Rise,
		})
	}
	if len(intervals) == 0 {
		return nil
	}

	profile := steppedBandProfile(intervals, c.StringerDepth)
	profile = routHousings(profile, c, intervals, c.TopSteps, topBase)

	frame := geom.FrameYZ()
	frame.Origin = r3.Vec{X: c.PivotX() + c.WinderWidth() - c.StringerWidth}
	return geom.Extrude(profile, frame, c.StringerWidth)
}

// routHousings subtracts tread housings for every interval, and riser
// housings for an adjoining straight flight, whose risers meet the
// stringer square-on. The flight is assumed to start at along-edge
// coordinate 0 with its first step top at flightBaseZ+rise.
func routHousings(profile geom.Profile, c Config, intervals []stepInterval, flightSteps int, flightBaseZ float64) geom.Profile {
	for _, iv := range intervals {
		cut := geom.Rect(iv.from-c.Nosing, iv.topZ-c.TreadThickness, iv.to, iv.topZ)
		profile = largestRegion(profile.Subtract(cut))
	}
	for i := 0; i < flightSteps; i++ {
		x0 := float64(i) * c.Going
		z0 := flightBaseZ + float64(i)*c.Rise
		drop := 0.0
		if i > 0 {
			drop = c.TreadThickness
		}
		cut := geom.Rect(x0, z0-drop, x0+c.RiserThickness, z0+c.Rise)
		profile = largestRegion(profile.Subtract(cut))
	}
	return profile
}
