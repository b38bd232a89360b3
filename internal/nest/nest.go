// Package nest arranges flat 2D parts onto fixed-size stock sheets. A
// nesting run races a battery of bin-packing heuristics over the same
// input and keeps the outcome with the fewest sheets, ties broken by
// packed-area efficiency.
package nest

import (
	"math"

	"github.com/piwi3910/StairCut/internal/model"
)

// rotationTolerance detects rotation by comparing a placement's width to
// the part's declared width.
const rotationTolerance = 0.1

// Nest packs parts onto sheetW x sheetH sheets, keeping at least spacing
// millimetres between adjacent parts. Parts that fit the sheet in no
// orientation are reported unpacked, never attempted. An empty or fully
// unfittable input yields a well-defined zero result.
func Nest(parts []model.Part, sheetW, sheetH, spacing float64) model.NestResult {
	fittable := make([]model.Part, 0, len(parts))
	var unpacked []int
	for _, p := range parts {
		if p.Fits(sheetW, sheetH) {
			fittable = append(fittable, p)
		} else {
			unpacked = append(unpacked, p.ID)
		}
	}

	pieces := make([]pieceRect, len(fittable))
	for i, p := range fittable {
		pieces[i] = pieceRect{id: p.ID, w: p.Width + spacing, h: p.Height + spacing}
	}

	// Pure fold over the battery: every heuristic runs, the ordering
	// "fewer sheets, then higher efficiency" decides what is kept.
	type outcome struct {
		heuristic Heuristic
		rects     []packedRect
		sheets    int
		eff       float64
	}
	var best *outcome
	for _, h := range Heuristics() {
		rects := h.pack(pieces, sheetW, sheetH)
		o := outcome{heuristic: h, rects: rects}
		for _, r := range rects {
			if r.bin+1 > o.sheets {
				o.sheets = r.bin + 1
			}
		}
		if o.sheets > 0 {
			var packedArea float64
			for _, r := range rects {
				packedArea += r.w * r.h
			}
			o.eff = packedArea / (float64(o.sheets) * sheetW * sheetH)
		}
		improves := o.sheets > 0 &&
			(best == nil || o.sheets < best.sheets ||
				(o.sheets == best.sheets && o.eff > best.eff))
		if improves {
			keep := o
			best = &keep
		}
	}

	if best == nil {
		return model.NestResult{
			Algorithm:  "None",
			Efficiency: 0,
			SheetCount: 0,
			Sheets:     map[int]model.SheetLayout{},
			Unpacked:   unpacked,
		}
	}

	return buildResult(best.rects, best.heuristic, best.eff, best.sheets,
		fittable, unpacked, sheetW, sheetH, spacing)
}

// buildResult reconstructs per-part placements from the winning flat
// rectangle list: the spacing pad is subtracted back out, rotation is
// detected against the declared part width, and the source polygon loops
// are carried through untouched.
func buildResult(rects []packedRect, h Heuristic, eff float64, sheets int,
	fittable []model.Part, unpacked []int, sheetW, sheetH, spacing float64) model.NestResult {

	byID := make(map[int]model.Part, len(fittable))
	for _, p := range fittable {
		byID[p.ID] = p
	}

	layouts := make(map[int]model.SheetLayout)
	placedIDs := make(map[int]bool, len(rects))
	for _, r := range rects {
		part := byID[r.id]
		placedIDs[r.id] = true
		placement := model.Placement{
			PartID:  r.id,
			Name:    part.Name,
			X:       r.x + spacing/2,
			Y:       r.y + spacing/2,
			Width:   r.w - spacing,
			Height:  r.h - spacing,
			Rotated: math.Abs((r.w-spacing)-part.Width) >= rotationTolerance,
			Outer:   part.Outer,
			Holes:   part.Holes,
		}
		layout := layouts[r.bin]
		layout.Parts = append(layout.Parts, placement)
		layouts[r.bin] = layout
	}

	for idx, layout := range layouts {
		var packedArea float64
		for _, p := range layout.Parts {
			packedArea += (p.Width + spacing) * (p.Height + spacing)
		}
		layout.Efficiency = round2(packedArea / (sheetW * sheetH) * 100)
		layouts[idx] = layout
	}

	// A fittable part the winning heuristic could not place after all
	// sheets is still accounted for.
	for _, p := range fittable {
		if !placedIDs[p.ID] {
			unpacked = append(unpacked, p.ID)
		}
	}

	return model.NestResult{
		Algorithm:  h.String(),
		Efficiency: round2(eff * 100),
		SheetCount: sheets,
		Sheets:     layouts,
		Unpacked:   unpacked,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
