package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is a straight boundary segment of a face in world coordinates.
type Edge struct {
	Start r3.Vec
	End   r3.Vec
}

// Wire is a closed loop of edges.
type Wire []Edge

// Face is a planar boundary face of a solid.
type Face struct {
	Area   float64
	Center r3.Vec
	Normal r3.Vec
	Outer  Wire
	Inner  []Wire
}

// Faces enumerates the boundary faces of the prism: the two caps plus one
// quad per profile edge. The caps carry the profile's holes as inner wires;
// side faces have none.
func (s *Solid) Faces() []Face {
	faces := make([]Face, 0, 2+len(s.Profile.Outer))
	faces = append(faces,
		s.capFace(0, r3.Scale(-1, s.Frame.Z)),
		s.capFace(s.Thickness, s.Frame.Z),
	)
	faces = append(faces, s.sideFaces(s.Profile.Outer)...)
	for _, h := range s.Profile.Holes {
		faces = append(faces, s.sideFaces(h)...)
	}
	return faces
}

func (s *Solid) capFace(z float64, normal r3.Vec) Face {
	c := s.Profile.Outer.Centroid()
	face := Face{
		Area:   s.Profile.Area(),
		Center: s.Frame.ToWorld(c.X, c.Y, z),
		Normal: normal,
		Outer:  s.ringWire(s.Profile.Outer, z),
	}
	for _, h := range s.Profile.Holes {
		face.Inner = append(face.Inner, s.ringWire(h, z))
	}
	return face
}

func (s *Solid) ringWire(ring Ring, z float64) Wire {
	wire := make(Wire, 0, len(ring))
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		wire = append(wire, Edge{
			Start: s.Frame.ToWorld(p.X, p.Y, z),
			End:   s.Frame.ToWorld(q.X, q.Y, z),
		})
	}
	return wire
}

func (s *Solid) sideFaces(ring Ring) []Face {
	faces := make([]Face, 0, len(ring))
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		a := s.Frame.ToWorld(p.X, p.Y, 0)
		b := s.Frame.ToWorld(q.X, q.Y, 0)
		c := s.Frame.ToWorld(q.X, q.Y, s.Thickness)
		d := s.Frame.ToWorld(p.X, p.Y, s.Thickness)

		dir := r3.Sub(b, a)
		length := r3.Norm(dir)
		if length == 0 {
			continue
		}
		normal := r3.Unit(r3.Cross(dir, s.Frame.Z))
		faces = append(faces, Face{
			Area:   length * s.Thickness,
			Center: r3.Scale(0.25, r3.Add(r3.Add(a, b), r3.Add(c, d))),
			Normal: normal,
			Outer: Wire{
				{Start: a, End: b},
				{Start: b, End: c},
				{Start: c, End: d},
				{Start: d, End: a},
			},
		})
	}
	return faces
}
