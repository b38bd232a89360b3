package stair

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/StairCut/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Category labels a manufacturing group of staircase components. Each
// category nests onto its own stock material.
type Category string

const (
	CategoryTread    Category = "tread"
	CategoryRiser    Category = "riser"
	CategoryStringer Category = "stringer"
	CategoryCarriage Category = "carriage"
	CategoryRib      Category = "rib"
	CategoryPlaster  Category = "plaster"
)

// Component is one physical staircase part: a named solid in a
// manufacturing category.
type Component struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Solid    *geom.Solid `json:"-"`
}

// Assembly is the full structural staircase, decomposed per category.
type Assembly struct {
	Treads    []Component
	Risers    []Component
	Stringers []Component
	Carriages []Component
	Ribs      []Component
	Plaster   []Component
}

// All returns every component across all categories.
func (a *Assembly) All() []Component {
	out := make([]Component, 0, a.Count())
	out = append(out, a.Treads...)
	out = append(out, a.Risers...)
	out = append(out, a.Stringers...)
	out = append(out, a.Carriages...)
	out = append(out, a.Ribs...)
	out = append(out, a.Plaster...)
	return out
}

// Count returns the total number of components.
func (a *Assembly) Count() int {
	return len(a.Treads) + len(a.Risers) + len(a.Stringers) +
		len(a.Carriages) + len(a.Ribs) + len(a.Plaster)
}

// ByCategory returns the components grouped by manufacturing category.
func (a *Assembly) ByCategory() map[Category][]Component {
	return map[Category][]Component{
		CategoryTread:    a.Treads,
		CategoryRiser:    a.Risers,
		CategoryStringer: a.Stringers,
		CategoryCarriage: a.Carriages,
		CategoryRib:      a.Ribs,
		CategoryPlaster:  a.Plaster,
	}
}

func newComponent(cat Category, index int, s *geom.Solid) Component {
	return Component{
		ID:       uuid.New().String()[:8],
		Name:     fmt.Sprintf("%s_%d", cat, index+1),
		Category: cat,
		Solid:    s,
	}
}

func appendComponents(dst []Component, cat Category, solids []*geom.Solid) []Component {
	for _, s := range solids {
		if s == nil || s.Volume() <= 0 {
			continue
		}
		dst = append(dst, newComponent(cat, len(dst), s))
	}
	return dst
}

// BuildStructural decomposes the configured staircase into its
// construction elements: skin panels (treads, risers), framing
// (stringers, carriages), soffit formers (ribs) and the plaster shell.
func BuildStructural(c Config) (*Assembly, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid staircase configuration: %w", err)
	}

	a := &Assembly{}
	pivot := r3.Vec{X: c.PivotX()}

	// Bottom flight, along +X with its inner edge at Y=-innerR.
	offBottom := r3.Vec{Y: -c.InnerR}
	t, r := flightTreadsRisers(c, c.BottomSteps)
	a.Treads = appendComponents(a.Treads, CategoryTread, translateAll(t, offBottom))
	a.Risers = appendComponents(a.Risers, CategoryRiser, translateAll(r, offBottom))
	if c.BottomSteps > 0 {
		inner := flightStringer(c, c.BottomSteps).Translate(offBottom)
		a.Stringers = appendComponents(a.Stringers, CategoryStringer, []*geom.Solid{inner})
	}
	a.Carriages = appendComponents(a.Carriages, CategoryCarriage,
		translateAll(flightCarriages(c, c.BottomSteps), offBottom))
	a.Ribs = appendComponents(a.Ribs, CategoryRib,
		translateAll(flightRibs(c, c.BottomSteps), offBottom))
	if p := flightPlaster(c, c.BottomSteps); p != nil {
		a.Plaster = appendComponents(a.Plaster, CategoryPlaster, []*geom.Solid{p.Translate(offBottom)})
	}

	// Winder about the pivot.
	wt, wr := winderTreadsRisers(c, pivot)
	a.Treads = appendComponents(a.Treads, CategoryTread, wt)
	a.Risers = appendComponents(a.Risers, CategoryRiser, wr)
	a.Ribs = appendComponents(a.Ribs, CategoryRib, winderRibs(c, pivot))
	a.Plaster = appendComponents(a.Plaster, CategoryPlaster, winderPlaster(c, pivot))

	// Outer stringers follow the winder's rectangular corner and carry
	// the adjoining flights.
	a.Stringers = appendComponents(a.Stringers, CategoryStringer,
		[]*geom.Solid{bottomOuterStringer(c), rightOuterStringer(c)})

	// Top flight, rotated to climb along +Y from the winder's top.
	offTop := r3.Vec{X: c.PivotX() + c.InnerR, Z: c.TopFlightBaseZ()}
	t2, r2 := flightTreadsRisers(c, c.TopSteps)
	a.Treads = appendComponents(a.Treads, CategoryTread, rotateTranslateAll(t2, offTop))
	a.Risers = appendComponents(a.Risers, CategoryRiser, rotateTranslateAll(r2, offTop))
	if c.TopSteps > 0 {
		inner := flightStringer(c, c.TopSteps)
		a.Stringers = appendComponents(a.Stringers, CategoryStringer,
			rotateTranslateAll([]*geom.Solid{inner}, offTop))
	}
	a.Carriages = appendComponents(a.Carriages, CategoryCarriage,
		rotateTranslateAll(flightCarriages(c, c.TopSteps), offTop))
	a.Ribs = appendComponents(a.Ribs, CategoryRib,
		rotateTranslateAll(flightRibs(c, c.TopSteps), offTop))
	if p := flightPlaster(c, c.TopSteps); p != nil {
		a.Plaster = appendComponents(a.Plaster, CategoryPlaster,
			rotateTranslateAll([]*geom.Solid{p}, offTop))
	}

	return a, nil
}

func translateAll(solids []*geom.Solid, d r3.Vec) []*geom.Solid {
	out := make([]*geom.Solid, 0, len(solids))
	for _, s := range solids {
		out = append(out, s.Translate(d))
	}
	return out
}

// rotateTranslateAll places top-flight elements: rotate 90 degrees about
// the world origin, then translate into position.
func rotateTranslateAll(solids []*geom.Solid, d r3.Vec) []*geom.Solid {
	out := make([]*geom.Solid, 0, len(solids))
	for _, s := range solids {
		out = append(out, s.RotateZ(r3.Vec{}, halfPi).Translate(d))
	}
	return out
}
