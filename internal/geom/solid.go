package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is a right-handed local coordinate system embedded in world space.
// Profiles live in the frame's XY plane; extrusion runs along Z.
type Frame struct {
	Origin r3.Vec
	X      r3.Vec
	Y      r3.Vec
	Z      r3.Vec
}

// FrameXY is the world XY plane, extruding along +Z.
func FrameXY() Frame {
	return Frame{
		X: r3.Vec{X: 1}, Y: r3.Vec{Y: 1}, Z: r3.Vec{Z: 1},
	}
}

// FrameXZ maps local XY onto the world XZ plane, extruding along -Y.
// Panels drawn in elevation (rise over run) use this frame so that
// extrusion by a positive width places the panel at negative world Y.
func FrameXZ() Frame {
	return Frame{
		X: r3.Vec{X: 1}, Y: r3.Vec{Z: 1}, Z: r3.Vec{Y: -1},
	}
}

// FrameYZ maps local XY onto the world YZ plane, extruding along +X.
func FrameYZ() Frame {
	return Frame{
		X: r3.Vec{Y: 1}, Y: r3.Vec{Z: 1}, Z: r3.Vec{X: 1},
	}
}

// ToWorld maps a local point (x, y, z) into world coordinates.
func (f Frame) ToWorld(x, y, z float64) r3.Vec {
	v := f.Origin
	v = r3.Add(v, r3.Scale(x, f.X))
	v = r3.Add(v, r3.Scale(y, f.Y))
	v = r3.Add(v, r3.Scale(z, f.Z))
	return v
}

// ToLocal maps a world point into local frame coordinates.
func (f Frame) ToLocal(p r3.Vec) r3.Vec {
	d := r3.Sub(p, f.Origin)
	return r3.Vec{
		X: r3.Dot(d, f.X),
		Y: r3.Dot(d, f.Y),
		Z: r3.Dot(d, f.Z),
	}
}

// Translated returns the frame shifted by d in world space.
func (f Frame) Translated(d r3.Vec) Frame {
	f.Origin = r3.Add(f.Origin, d)
	return f
}

// RotatedZ returns the frame rotated by angle radians about the world Z
// axis through the world point pivot.
func (f Frame) RotatedZ(pivot r3.Vec, angle float64) Frame {
	rot := func(v r3.Vec) r3.Vec {
		c, s := math.Cos(angle), math.Sin(angle)
		return r3.Vec{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}
	}
	rel := r3.Sub(f.Origin, pivot)
	return Frame{
		Origin: r3.Add(pivot, rot(rel)),
		X:      rot(f.X),
		Y:      rot(f.Y),
		Z:      rot(f.Z),
	}
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min, Max r3.Vec
}

// Size returns the box extents along each world axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// LongestAxis returns the index (0=X, 1=Y, 2=Z) and extent of the box's
// longest side.
func (b Box) LongestAxis() (int, float64) {
	s := b.Size()
	axis, extent := 0, s.X
	if s.Y > extent {
		axis, extent = 1, s.Y
	}
	if s.Z > extent {
		axis, extent = 2, s.Z
	}
	return axis, extent
}

func (b Box) extend(p r3.Vec) Box {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Solid is a prism: a planar profile extruded along its frame's Z axis by
// Thickness. All staircase components are panels of this form.
type Solid struct {
	Profile   Profile
	Frame     Frame
	Thickness float64
}

// Extrude creates a prism from a profile on the given frame.
func Extrude(p Profile, f Frame, thickness float64) *Solid {
	return &Solid{Profile: p, Frame: f, Thickness: thickness}
}

// NewBox creates an axis-aligned box with its minimum corner at min.
func NewBox(min r3.Vec, sx, sy, sz float64) *Solid {
	f := FrameXY()
	f.Origin = min
	return Extrude(Rect(0, 0, sx, sy), f, sz)
}

// Translate shifts the solid by d in world space.
func (s *Solid) Translate(d r3.Vec) *Solid {
	return &Solid{Profile: s.Profile, Frame: s.Frame.Translated(d), Thickness: s.Thickness}
}

// RotateZ rotates the solid about the world Z axis through pivot.
func (s *Solid) RotateZ(pivot r3.Vec, angle float64) *Solid {
	return &Solid{Profile: s.Profile, Frame: s.Frame.RotatedZ(pivot, angle), Thickness: s.Thickness}
}

// Volume returns the prism volume in cubic millimetres.
func (s *Solid) Volume() float64 {
	return s.Profile.Area() * s.Thickness
}

// BoundingBox returns the world axis-aligned bounding box of the prism,
// taking every profile vertex at both caps into account.
func (s *Solid) BoundingBox() Box {
	rings := append([]Ring{s.Profile.Outer}, s.Profile.Holes...)
	first := true
	var box Box
	for _, ring := range rings {
		for _, p := range ring {
			for _, z := range [2]float64{0, s.Thickness} {
				w := s.Frame.ToWorld(p.X, p.Y, z)
				if first {
					box = Box{Min: w, Max: w}
					first = false
				} else {
					box = box.extend(w)
				}
			}
		}
	}
	return box
}

var errEmptyProfile = errors.New("geom: empty profile")

// ErrEmptyProfile reports whether err came from a boolean on a degenerate
// solid.
func ErrEmptyProfile(err error) bool {
	return errors.Is(err, errEmptyProfile)
}

// Intersect clips the solid against a tool profile expressed in the solid's
// own frame. The tool is assumed to span the full thickness. Disjoint
// fragments come back as separate solids on the same frame.
func (s *Solid) Intersect(tool Profile) ([]*Solid, error) {
	return s.clip(tool, false)
}

// Subtract removes a tool profile, expressed in the solid's frame, from the
// solid.
func (s *Solid) Subtract(tool Profile) ([]*Solid, error) {
	return s.clip(tool, true)
}

func (s *Solid) clip(tool Profile, subtract bool) ([]*Solid, error) {
	if len(s.Profile.Outer) < 3 || len(tool.Outer) < 3 {
		return nil, errEmptyProfile
	}
	var regions []Profile
	if subtract {
		regions = s.Profile.Subtract(tool)
	} else {
		regions = s.Profile.Intersect(tool)
	}
	out := make([]*Solid, 0, len(regions))
	for _, reg := range regions {
		out = append(out, &Solid{Profile: reg, Frame: s.Frame, Thickness: s.Thickness})
	}
	return out, nil
}
