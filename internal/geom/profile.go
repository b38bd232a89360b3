// Package geom provides the planar-solid geometry layer the manufacturing
// pipeline is built on. Staircase components are uniformly flat panels, so
// solids are represented as prisms: a planar profile (outer polygon plus
// holes) on a local frame, extruded along the frame normal. Booleans between
// co-planar prisms reduce to 2D polygon clipping, which is delegated to
// github.com/ctessum/geom.
package geom

import (
	"math"

	polyclip "github.com/ctessum/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Ring is a closed 2D polygon loop. The loop is implicitly closed: the last
// point connects back to the first. Winding direction is not normalized.
type Ring []r2.Vec

// SignedArea returns the shoelace area of the ring. Positive for
// counter-clockwise winding, negative for clockwise.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the absolute area enclosed by the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Centroid returns the area centroid of the ring.
func (r Ring) Centroid() r2.Vec {
	a := r.SignedArea()
	if a == 0 {
		// Degenerate ring, fall back to the vertex mean.
		var c r2.Vec
		for _, p := range r {
			c = r2.Add(c, p)
		}
		return r2.Scale(1/float64(len(r)), c)
	}
	var cx, cy float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return r2.Vec{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Reversed returns a copy of the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Translate shifts all points by dx, dy.
func (r Ring) Translate(dx, dy float64) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = r2.Vec{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Contains reports whether pt lies inside the ring (even-odd rule).
func (r Ring) Contains(pt r2.Vec) bool {
	inside := false
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Profile is a planar region: one outer boundary and zero or more holes,
// each hole fully contained in the outer boundary.
type Profile struct {
	Outer Ring
	Holes []Ring
}

// Rect returns a rectangular profile spanning [x0,x1] x [y0,y1].
func Rect(x0, y0, x1, y1 float64) Profile {
	return Profile{Outer: Ring{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

// Circle returns a polygonised circular ring around center with the given
// radius. segments controls the tessellation fineness. The tessellation
// starts half a segment off the X axis: a vertex landing exactly on an
// axis-aligned edge of a clipping operand degenerates the boolean, and
// axis-aligned edges through the center are the common case here.
func Circle(center r2.Vec, radius float64, segments int) Ring {
	if segments < 8 {
		segments = 8
	}
	ring := make(Ring, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * (float64(i) + 0.5) / float64(segments)
		ring[i] = r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return ring
}

// Area returns the net enclosed area (outer minus holes).
func (p Profile) Area() float64 {
	a := p.Outer.Area()
	for _, h := range p.Holes {
		a -= h.Area()
	}
	if a < 0 {
		return 0
	}
	return a
}

// Bounds returns the bounding box of the outer ring as (min, max).
func (p Profile) Bounds() (min, max r2.Vec) {
	if len(p.Outer) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	min, max = p.Outer[0], p.Outer[0]
	for _, pt := range p.Outer[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}

// Translate shifts the whole profile by dx, dy.
func (p Profile) Translate(dx, dy float64) Profile {
	out := Profile{Outer: p.Outer.Translate(dx, dy)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, h.Translate(dx, dy))
	}
	return out
}

// Intersect clips the profile against q and returns the resulting regions.
// Disjoint pieces come back as separate profiles.
func (p Profile) Intersect(q Profile) []Profile {
	return regionsFromPolygonal(p.toPolygon().Intersection(q.toPolygon()))
}

// Subtract removes q from the profile and returns the resulting regions.
func (p Profile) Subtract(q Profile) []Profile {
	return regionsFromPolygonal(p.toPolygon().Difference(q.toPolygon()))
}

// regionsFromPolygonal flattens a clipping result, which the library hands
// back behind its Polygonal interface, into plain rings before grouping.
func regionsFromPolygonal(poly polyclip.Polygonal) []Profile {
	if poly == nil {
		return nil
	}
	var flat polyclip.Polygon
	for _, pg := range poly.Polygons() {
		flat = append(flat, pg...)
	}
	return regionsFromPolygon(flat)
}

// toPolygon converts to the clipping library's representation with
// normalized winding: outer counter-clockwise, holes clockwise.
func (p Profile) toPolygon() polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, 1+len(p.Holes))
	poly = append(poly, ringToPath(p.Outer, true))
	for _, h := range p.Holes {
		poly = append(poly, ringToPath(h, false))
	}
	return poly
}

func ringToPath(r Ring, ccw bool) []polyclip.Point {
	if (r.SignedArea() > 0) != ccw {
		r = r.Reversed()
	}
	path := make([]polyclip.Point, len(r))
	for i, pt := range r {
		path[i] = polyclip.Point{X: pt.X, Y: pt.Y}
	}
	return path
}

func pathToRing(path []polyclip.Point) Ring {
	ring := make(Ring, len(path))
	for i, pt := range path {
		ring[i] = r2.Vec{X: pt.X, Y: pt.Y}
	}
	return ring
}

// regionsFromPolygon groups the rings of a clipping result into profiles.
// Rings contained in an odd number of other rings are holes of their
// innermost containing outer ring; the rest each start their own region.
// Slivers below a hundredth of a square millimetre are dropped.
func regionsFromPolygon(poly polyclip.Polygon) []Profile {
	type ringInfo struct {
		ring  Ring
		depth int
		area  float64
	}

	var rings []ringInfo
	for _, path := range poly {
		r := pathToRing(path)
		if a := r.Area(); a > 0.01 {
			rings = append(rings, ringInfo{ring: r, area: a})
		}
	}

	for i := range rings {
		probe := rings[i].ring[0]
		for j := range rings {
			if i != j && rings[j].area > rings[i].area && rings[j].ring.Contains(probe) {
				rings[i].depth++
			}
		}
	}

	var out []Profile
	outerIdx := make(map[int]int) // ring index -> profile index
	for i, ri := range rings {
		if ri.depth%2 == 0 {
			outerIdx[i] = len(out)
			out = append(out, Profile{Outer: ri.ring})
		}
	}
	for _, ri := range rings {
		if ri.depth%2 == 0 {
			continue
		}
		// Attach to the smallest even-depth ring containing it.
		best, bestArea := -1, math.MaxFloat64
		probe := ri.ring[0]
		for j, rj := range rings {
			if rj.depth%2 == 0 && rj.area > ri.area && rj.area < bestArea && rj.ring.Contains(probe) {
				best, bestArea = j, rj.area
			}
		}
		if best >= 0 {
			pi := outerIdx[best]
			out[pi].Holes = append(out[pi].Holes, ri.ring)
		}
	}
	return out
}
