package nest

import "sort"

// Heuristic identifies one bin-packing strategy of the battery. The set
// is closed: no single heuristic dominates across part aspect-ratio
// mixes, so a nesting run executes all of them and keeps the best
// outcome.
type Heuristic int

const (
	MaxRectsBAF Heuristic = iota
	MaxRectsBL
	SkylineBL
	GuillotineBSSF
)

func (h Heuristic) String() string {
	switch h {
	case MaxRectsBAF:
		return "MaxRectsBaf"
	case MaxRectsBL:
		return "MaxRectsBl"
	case SkylineBL:
		return "SkylineBl"
	case GuillotineBSSF:
		return "GuillotineBssf"
	default:
		return "Unknown"
	}
}

// Heuristics returns the full battery in execution order.
func Heuristics() []Heuristic {
	return []Heuristic{MaxRectsBAF, MaxRectsBL, SkylineBL, GuillotineBSSF}
}

// binPacker packs a single fixed-size sheet. score ranks a candidate
// piece without state change; insert commits the best placement. Both
// consider 90 degree rotation.
type binPacker interface {
	score(w, h float64) (fitness, bool)
	insert(w, h float64) (rect, bool)
}

func (h Heuristic) newBin(width, height float64) binPacker {
	switch h {
	case MaxRectsBL:
		return newMaxRectsBin(width, height, true)
	case SkylineBL:
		return newSkylineBin(width, height)
	case GuillotineBSSF:
		return newGuillotineBin(width, height)
	default:
		return newMaxRectsBin(width, height, false)
	}
}

// maxSheets bounds the candidate sheet pool for one run: far more than
// any realistic staircase nesting needs.
const maxSheets = 50

// pieceRect is an input rectangle for one packing run, already padded.
type pieceRect struct {
	id   int
	w, h float64
}

// packedRect is one placed rectangle of a packing run's flat output.
type packedRect struct {
	bin        int
	x, y, w, h float64
	id         int
}

// pack runs one offline packing pass: pieces sorted by area descending,
// sheets filled one at a time, each taking the globally best-fitting
// remaining piece until nothing more fits, then moving to a fresh sheet.
func (h Heuristic) pack(pieces []pieceRect, sheetW, sheetH float64) []packedRect {
	remaining := make([]pieceRect, len(pieces))
	copy(remaining, pieces)
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].w*remaining[i].h > remaining[j].w*remaining[j].h
	})

	var out []packedRect
	for binIdx := 0; binIdx < maxSheets && len(remaining) > 0; binIdx++ {
		bin := h.newBin(sheetW, sheetH)
		for {
			bestIdx := -1
			var bestFit fitness
			for i, p := range remaining {
				fit, ok := bin.score(p.w, p.h)
				if !ok {
					continue
				}
				if bestIdx < 0 || fit.better(bestFit) {
					bestIdx, bestFit = i, fit
				}
			}
			if bestIdx < 0 {
				break
			}
			piece := remaining[bestIdx]
			placed, ok := bin.insert(piece.w, piece.h)
			if !ok {
				break
			}
			out = append(out, packedRect{
				bin: binIdx,
				x:   placed.x, y: placed.y,
				w: placed.w, h: placed.h,
				id: piece.id,
			})
			remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		}
	}
	return out
}
