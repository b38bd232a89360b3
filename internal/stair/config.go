// Package stair generates a construction-level staircase decomposed into
// flat panel components: treads, risers, stringers, carriages, soffit ribs
// and a plaster shell. The layout is a quarter-turn stair: a bottom flight
// along +X, a winder turning 90 degrees about a pivot, and a top flight
// along +Y.
package stair

import "math"

// Config holds the architectural parameters of the staircase. All lengths
// are millimetres.
type Config struct {
	Width   float64 `json:"width"`
	Rise    float64 `json:"rise"`
	Going   float64 `json:"going"`
	Waist   float64 `json:"waist"`
	InnerR  float64 `json:"innerRadius"`
	Nosing  float64 `json:"nosing"`

	BottomSteps int `json:"bottomSteps"`
	WinderSteps int `json:"winderSteps"`
	TopSteps    int `json:"topSteps"`

	ExtendTop float64 `json:"extendTopFlight"`

	TreadThickness float64 `json:"treadThickness"`
	RiserThickness float64 `json:"riserThickness"`

	StringerWidth float64 `json:"stringerWidth"`
	StringerDepth float64 `json:"stringerDepth"`

	CarriageWidth float64 `json:"carriageWidth"`
	CarriageDepth float64 `json:"carriageDepth"`

	RibSpacing float64 `json:"ribSpacing"`
	RibWidth   float64 `json:"ribWidth"`
	RibDepth   float64 `json:"ribDepth"`

	PlasterThickness float64 `json:"plasterThickness"`
}

// DefaultConfig returns the standard quarter-turn domestic staircase.
func DefaultConfig() Config {
	return Config{
		Width:   800,
		Rise:    220,
		Going:   250,
		Waist:   200,
		InnerR:  100,
		Nosing:  20,

		BottomSteps: 3,
		WinderSteps: 3,
		TopSteps:    8,

		ExtendTop: 300,

		TreadThickness: 20,
		RiserThickness: 20,

		StringerWidth: 50,
		StringerDepth: 220,

		CarriageWidth: 50,
		CarriageDepth: 180,

		RibSpacing: 300,
		RibWidth:   18,
		RibDepth:   100,

		PlasterThickness: 10,
	}
}

// WinderWidth is the square winder region's side length: the flight width
// plus the inner turning radius.
func (c Config) WinderWidth() float64 {
	return c.Width + c.InnerR
}

// PivotX is the global X of the winder's turning pivot: the end of the
// bottom flight.
func (c Config) PivotX() float64 {
	return float64(c.BottomSteps) * c.Going
}

// WinderBaseZ is the height of the top of the bottom flight, where the
// winder starts.
func (c Config) WinderBaseZ() float64 {
	return float64(c.BottomSteps) * c.Rise
}

// TopFlightBaseZ is the height the top flight starts from.
func (c Config) TopFlightBaseZ() float64 {
	return c.WinderBaseZ() + float64(c.WinderSteps)*c.Rise
}

// TotalRise is the overall height climbed by the staircase.
func (c Config) TotalRise() float64 {
	return c.TopFlightBaseZ() + float64(c.TopSteps)*c.Rise
}

// Pitch returns the flight pitch in degrees.
func (c Config) Pitch() float64 {
	return math.Atan2(c.Rise, c.Going) * 180 / math.Pi
}

// CarriageCount returns the number of internal carriage beams for the
// configured width: one per roughly 400mm of clear span.
func (c Config) CarriageCount() int {
	n := int(math.Round(c.Width/400)) - 1
	if n < 1 {
		n = 1
	}
	return n
}
