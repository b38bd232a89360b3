package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRingSignedArea(t *testing.T) {
	tests := []struct {
		name string
		ring Ring
		want float64
	}{
		{"ccw unit square", Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 1},
		{"cw unit square", Ring{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, -1},
		{"triangle", Ring{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, 6},
		{"degenerate", Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.ring.SignedArea(), 1e-9)
		})
	}
}

func TestCircleArea(t *testing.T) {
	c := Circle(r2.Vec{X: 10, Y: -5}, 50, 64)
	require.Len(t, c, 64)
	// Polygonised area is slightly under pi*r^2.
	assert.InEpsilon(t, math.Pi*50*50, c.Area(), 0.01)
	assert.InDelta(t, 10, c.Centroid().X, 1e-6)
	assert.InDelta(t, -5, c.Centroid().Y, 1e-6)
}

func TestProfileAreaWithHole(t *testing.T) {
	p := Rect(0, 0, 100, 50)
	p.Holes = append(p.Holes, Circle(r2.Vec{X: 50, Y: 25}, 10, 64))
	assert.Less(t, p.Area(), 5000.0)
	assert.Greater(t, p.Area(), 5000.0-math.Pi*100-5)
}

func TestProfileSubtractSplits(t *testing.T) {
	base := Rect(0, 0, 300, 100)
	strip := Rect(140, -10, 160, 110)

	regions := base.Subtract(strip)
	require.Len(t, regions, 2)
	total := 0.0
	for _, r := range regions {
		total += r.Area()
	}
	assert.InDelta(t, 300*100-20*100, total, 1e-6)
}

func TestProfileSubtractMakesHole(t *testing.T) {
	base := Rect(0, 0, 200, 200)
	plug := Rect(80, 80, 120, 120)

	regions := base.Subtract(plug)
	require.Len(t, regions, 1)
	require.Len(t, regions[0].Holes, 1)
	assert.InDelta(t, 200*200-40*40, regions[0].Area(), 1e-6)
}

func TestProfileSubtractManyRings(t *testing.T) {
	// Two cuts: one splits the base, one punches a hole in the left
	// piece. The clipping result carries several polygons whose rings
	// must all survive the regrouping.
	base := Rect(0, 0, 300, 100)
	regions := base.Subtract(Rect(190, -10, 210, 110))
	require.Len(t, regions, 2)

	left := regions[0]
	if left.Outer[0].X > 150 {
		left = regions[1]
	}
	sub := left.Subtract(Rect(50, 40, 80, 60))
	require.Len(t, sub, 1)
	require.Len(t, sub[0].Holes, 1)
	assert.InDelta(t, 190*100-30*20, sub[0].Area(), 1e-6)
}

func TestProfileIntersect(t *testing.T) {
	a := Rect(0, 0, 100, 100)
	b := Rect(50, 50, 200, 200)

	regions := a.Intersect(b)
	require.Len(t, regions, 1)
	assert.InDelta(t, 50*50, regions[0].Area(), 1e-6)

	min, max := regions[0].Bounds()
	assert.InDelta(t, 50, min.X, 1e-6)
	assert.InDelta(t, 100, max.Y, 1e-6)
}

func TestProfileSubtractCircleOnRadialEdge(t *testing.T) {
	// A fan wedge with a radial edge straight down the Y axis, minus a
	// circle centered on the fan pivot. The circle tessellation must not
	// put a vertex exactly on the wedge edge, or the boolean collapses
	// and the whole wedge is lost.
	wedge := Profile{Outer: Ring{
		{X: 0, Y: 0}, {X: 0, Y: -900}, {X: 519.6, Y: -900},
	}}
	void := Profile{Outer: Circle(r2.Vec{}, 100, 64)}

	regions := wedge.Subtract(void)
	require.Len(t, regions, 1)

	// The cut removes the 30 degree sector of the circle.
	want := wedge.Area() - math.Pi*100*100/12
	assert.InEpsilon(t, want, regions[0].Area(), 0.01)
}

func TestProfileIntersectDisjoint(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(100, 100, 110, 110)
	assert.Empty(t, a.Intersect(b))
}

func TestFrameRoundTrip(t *testing.T) {
	frames := map[string]Frame{
		"xy": FrameXY(),
		"xz": FrameXZ(),
		"yz": FrameYZ(),
	}
	for name, f := range frames {
		t.Run(name, func(t *testing.T) {
			f.Origin = r3.Vec{X: 5, Y: -3, Z: 12}
			w := f.ToWorld(7, 11, 2)
			l := f.ToLocal(w)
			assert.InDelta(t, 7, l.X, 1e-9)
			assert.InDelta(t, 11, l.Y, 1e-9)
			assert.InDelta(t, 2, l.Z, 1e-9)
		})
	}
}

func TestFrameXZExtrudesNegativeY(t *testing.T) {
	f := FrameXZ()
	w := f.ToWorld(0, 0, 100)
	assert.InDelta(t, -100, w.Y, 1e-9)
}

func TestSolidVolumeAndBounds(t *testing.T) {
	s := NewBox(r3.Vec{X: 10, Y: 20, Z: 30}, 100, 50, 20)
	assert.InDelta(t, 100*50*20, s.Volume(), 1e-6)

	box := s.BoundingBox()
	assert.Equal(t, r3.Vec{X: 10, Y: 20, Z: 30}, box.Min)
	assert.Equal(t, r3.Vec{X: 110, Y: 70, Z: 50}, box.Max)

	axis, extent := box.LongestAxis()
	assert.Equal(t, 0, axis)
	assert.InDelta(t, 100, extent, 1e-9)
}

func TestSolidTranslateRotate(t *testing.T) {
	s := NewBox(r3.Vec{}, 100, 10, 10)
	moved := s.Translate(r3.Vec{X: 1, Y: 2, Z: 3})
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, moved.BoundingBox().Min)
	// Original is untouched.
	assert.Equal(t, r3.Vec{}, s.BoundingBox().Min)

	rot := s.RotateZ(r3.Vec{}, math.Pi/2)
	box := rot.BoundingBox()
	axis, _ := box.LongestAxis()
	assert.Equal(t, 1, axis)
	assert.InDelta(t, s.Volume(), rot.Volume(), 1e-6)
}

func TestSolidFaces(t *testing.T) {
	s := NewBox(r3.Vec{}, 100, 50, 20)
	faces := s.Faces()
	require.Len(t, faces, 6)

	// Caps are the two largest faces on a flat panel.
	assert.InDelta(t, 5000, faces[0].Area, 1e-6)
	assert.InDelta(t, 5000, faces[1].Area, 1e-6)
	assert.InDelta(t, -1, faces[0].Normal.Z, 1e-9)
	assert.InDelta(t, 1, faces[1].Normal.Z, 1e-9)
	assert.InDelta(t, 20, faces[1].Center.Z, 1e-9)

	for _, f := range faces[2:] {
		assert.InDelta(t, 0, f.Normal.Z, 1e-9)
		assert.Len(t, f.Outer, 4)
	}
}

func TestSolidFacesWithHole(t *testing.T) {
	p := Rect(0, 0, 100, 100)
	p.Holes = append(p.Holes, Circle(r2.Vec{X: 50, Y: 50}, 10, 16))
	s := Extrude(p, FrameXY(), 18)

	faces := s.Faces()
	require.Len(t, faces, 2+4+16)
	require.Len(t, faces[0].Inner, 1)
	assert.Len(t, faces[0].Inner[0], 16)
}

func TestSolidClipErrors(t *testing.T) {
	s := Extrude(Profile{}, FrameXY(), 10)
	_, err := s.Intersect(Rect(0, 0, 1, 1))
	require.Error(t, err)
	assert.True(t, ErrEmptyProfile(err))
}

func TestSolidSubtractFragments(t *testing.T) {
	s := Extrude(Rect(0, 0, 400, 100), FrameXY(), 20)
	parts, err := s.Subtract(Rect(190, -10, 210, 110))
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.InDelta(t, 190*100*20, p.Volume(), 1e-6)
		assert.Equal(t, 20.0, p.Thickness)
	}
}
