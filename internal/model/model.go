// Package model defines the shared types of the nesting pipeline: flat
// part geometry, sheet placements and nesting results.
package model

import "math"

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the
// first. Winding direction follows whatever the source face traversal
// yielded and is not guaranteed consistent between loops.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// SignedArea returns the shoelace area of the outline: positive for
// counter-clockwise winding, negative for clockwise.
func (o Outline) SignedArea() float64 {
	if len(o) < 3 {
		return 0
	}
	var sum float64
	for i, p := range o {
		q := o[(i+1)%len(o)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Profile2D is a flat profile extracted from a 3D part: the boundary of
// its largest face, normalized so the bounding box starts at the origin.
type Profile2D struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Outer  Outline   `json:"outerPoints"`
	Holes  []Outline `json:"innerLoops,omitempty"` // each fully inside the outer boundary
	// FaceArea is the source face's true 3D area, for material reporting.
	FaceArea float64 `json:"faceArea"`
	// SkippedEdges counts boundary edges dropped during extraction.
	SkippedEdges int `json:"-"`
}

// Part is the unit of nesting: a named flat profile with an id unique
// within one nesting request. Parts are immutable once created; the
// nester records placements separately, keyed by id.
type Part struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Width    float64   `json:"width"`  // mm (bounding box width)
	Height   float64   `json:"height"` // mm (bounding box height)
	Outer    Outline   `json:"outerPoints"`
	Holes    []Outline `json:"innerLoops,omitempty"`
	Category string    `json:"category,omitempty"` // material group
}

// Fits reports whether the part fits a sheet in at least one orientation.
func (p Part) Fits(sheetW, sheetH float64) bool {
	return (p.Width <= sheetW && p.Height <= sheetH) ||
		(p.Width <= sheetH && p.Height <= sheetW)
}

// Area returns the part's bounding-rectangle area.
func (p Part) Area() float64 {
	return p.Width * p.Height
}

// Placement locates one part on one sheet. Width and Height are the
// placed extents, swapped relative to the part's own if Rotated.
type Placement struct {
	PartID  int       `json:"id"`
	Name    string    `json:"name"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Rotated bool      `json:"rotated"`
	Outer   Outline   `json:"outerPoints"`
	Holes   []Outline `json:"innerLoops,omitempty"`
}

// Overlaps reports whether two placed rectangles intersect.
func (p Placement) Overlaps(q Placement) bool {
	return p.X < q.X+q.Width && q.X < p.X+p.Width &&
		p.Y < q.Y+q.Height && q.Y < p.Y+p.Height
}

// SheetLayout is one sheet's placements plus its own fill efficiency.
type SheetLayout struct {
	Efficiency float64     `json:"efficiencyPercent"`
	Parts      []Placement `json:"parts"`
}

// NestResult holds the chosen outcome of a nesting run: the winning
// algorithm, its sheet layouts and any parts that could not be placed.
type NestResult struct {
	Algorithm  string              `json:"algorithm"`
	Efficiency float64             `json:"efficiencyPercent"`
	SheetCount int                 `json:"sheetCount"`
	Sheets     map[int]SheetLayout `json:"sheets"`
	Unpacked   []int               `json:"unpacked,omitempty"`
}

// PlacedCount returns the number of placements across all sheets.
func (r NestResult) PlacedCount() int {
	n := 0
	for _, sheet := range r.Sheets {
		n += len(sheet.Parts)
	}
	return n
}

// StockSheet represents the stock material parts are nested onto.
type StockSheet struct {
	Width     float64 `json:"width"`  // mm
	Height    float64 `json:"height"` // mm
	Material  string  `json:"material,omitempty"`
	Thickness float64 `json:"thickness,omitempty"` // mm
}

// Area returns the sheet area.
func (s StockSheet) Area() float64 {
	return s.Width * s.Height
}

// RoundMM rounds a coordinate to 2 decimal places (hundredths of a mm),
// the precision profile extraction works at.
func RoundMM(v float64) float64 {
	return math.Round(v*100) / 100
}
