package nest

// rect is an axis-aligned rectangle in sheet coordinates.
type rect struct {
	x, y, w, h float64
}

// fitness orders candidate placements: compared lexicographically, lower
// is better.
type fitness [2]float64

func (f fitness) better(g fitness) bool {
	if f[0] != g[0] {
		return f[0] < g[0]
	}
	return f[1] < g[1]
}

// maxRectsBin packs one sheet with the maximal-rectangles scheme: free
// space is kept as a set of maximal overlapping rectangles, all of which
// are re-split around every placement.
type maxRectsBin struct {
	freeRects []rect
	bottomLeft bool // rank candidates bottom-left instead of best-area-fit
}

func newMaxRectsBin(width, height float64, bottomLeft bool) *maxRectsBin {
	return &maxRectsBin{
		freeRects:  []rect{{0, 0, width, height}},
		bottomLeft: bottomLeft,
	}
}

// findBest returns the best free rect and orientation for a w×h piece.
func (b *maxRectsBin) findBest(w, h float64) (chosen rect, pw, ph float64, fit fitness, ok bool) {
	for _, r := range b.freeRects {
		for _, dims := range [2][2]float64{{w, h}, {h, w}} {
			cw, ch := dims[0], dims[1]
			if cw > r.w+epsilon || ch > r.h+epsilon {
				continue
			}
			var f fitness
			if b.bottomLeft {
				f = fitness{r.y + ch, r.x}
			} else {
				f = fitness{r.w*r.h - cw*ch, minf(r.w-cw, r.h-ch)}
			}
			if !ok || f.better(fit) {
				chosen, pw, ph, fit, ok = r, cw, ch, f, true
			}
		}
	}
	return chosen, pw, ph, fit, ok
}

func (b *maxRectsBin) score(w, h float64) (fitness, bool) {
	_, _, _, fit, ok := b.findBest(w, h)
	return fit, ok
}

func (b *maxRectsBin) insert(w, h float64) (rect, bool) {
	chosen, pw, ph, _, ok := b.findBest(w, h)
	if !ok {
		return rect{}, false
	}
	placed := rect{x: chosen.x, y: chosen.y, w: pw, h: ph}
	b.splitAroundPlacement(placed)
	return placed, true
}

// splitAroundPlacement removes all free rects overlapping the placed rect
// and generates maximal sub-rects from each overlap, then prunes rects
// contained in another.
func (b *maxRectsBin) splitAroundPlacement(placed rect) {
	var newRects []rect
	for _, r := range b.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}
		// Left strip (full height of original rect)
		if placed.x > r.x+epsilon {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		// Right strip
		if placed.x+placed.w < r.x+r.w-epsilon {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Bottom strip (full width of original rect)
		if placed.y > r.y+epsilon {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		// Top strip
		if placed.y+placed.h < r.y+r.h-epsilon {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}
	b.freeRects = pruneContained(newRects)
}

const epsilon = 0.001

func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-epsilon && a.x+a.w > b.x+epsilon &&
		a.y < b.y+b.h-epsilon && a.y+a.h > b.y+epsilon
}

// pruneContained removes any rect fully contained within another. When
// two rects coincide within epsilon each contains the other, so only the
// later duplicate is dropped, never both.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if containsRect(a, b) && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+epsilon && outer.y <= inner.y+epsilon &&
		outer.x+outer.w >= inner.x+inner.w-epsilon &&
		outer.y+outer.h >= inner.y+inner.h-epsilon
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
