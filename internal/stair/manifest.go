package stair

import "math"

// PartSummary describes one component for reporting: identity, extents
// and material volume.
type PartSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Min      [3]float64 `json:"min"`
	Max      [3]float64 `json:"max"`
	Volume   float64  `json:"volumeMm3"`
}

// Manifest lists every component per category with bounding box and
// volume. It feeds the bill of materials and the HTTP API.
type Manifest struct {
	Categories map[Category][]PartSummary `json:"categories"`
	PartCount  int                        `json:"partCount"`
	Volume     float64                    `json:"totalVolumeMm3"`
	// Massing figures come from the volumetric model, not the sum of
	// parts: the envelope is the space the staircase claims in the
	// stairwell, the volume what a solid-timber build would displace.
	MassingVolume float64    `json:"massingVolumeMm3"`
	EnvelopeMin   [3]float64 `json:"envelopeMin"`
	EnvelopeMax   [3]float64 `json:"envelopeMax"`
}

// BuildManifest summarises an assembly against its configuration.
func BuildManifest(c Config, a *Assembly) Manifest {
	m := Manifest{Categories: map[Category][]PartSummary{}}
	for i, s := range BuildMassing(c) {
		m.MassingVolume += s.Volume()
		box := s.BoundingBox()
		if i == 0 {
			m.EnvelopeMin = [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
			m.EnvelopeMax = [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
			continue
		}
		m.EnvelopeMin = [3]float64{
			math.Min(m.EnvelopeMin[0], box.Min.X),
			math.Min(m.EnvelopeMin[1], box.Min.Y),
			math.Min(m.EnvelopeMin[2], box.Min.Z),
		}
		m.EnvelopeMax = [3]float64{
			math.Max(m.EnvelopeMax[0], box.Max.X),
			math.Max(m.EnvelopeMax[1], box.Max.Y),
			math.Max(m.EnvelopeMax[2], box.Max.Z),
		}
	}
	for cat, comps := range a.ByCategory() {
		if len(comps) == 0 {
			continue
		}
		summaries := make([]PartSummary, 0, len(comps))
		for _, comp := range comps {
			summaries = append(summaries, summarise(comp))
			m.PartCount++
			m.Volume += comp.Solid.Volume()
		}
		m.Categories[cat] = summaries
	}
	return m
}

func summarise(comp Component) PartSummary {
	box := comp.Solid.BoundingBox()
	return PartSummary{
		ID:       comp.ID,
		Name:     comp.Name,
		Category: comp.Category,
		Min:      [3]float64{box.Min.X, box.Min.Y, box.Min.Z},
		Max:      [3]float64{box.Max.X, box.Max.Y, box.Max.Z},
		Volume:   comp.Solid.Volume(),
	}
}

// CategoryVolume returns the summed component volume for one category.
func (m Manifest) CategoryVolume(cat Category) float64 {
	var v float64
	for _, p := range m.Categories[cat] {
		v += p.Volume
	}
	return v
}
