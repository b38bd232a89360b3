package nest

// guillotineBin packs one sheet with guillotine splitting and the
// best-short-side-fit rule: every placement picks the free rect whose
// shorter leftover side is smallest, then cuts the remainder into two
// disjoint rects along the shorter leftover axis.
type guillotineBin struct {
	freeRects []rect
}

func newGuillotineBin(width, height float64) *guillotineBin {
	return &guillotineBin{freeRects: []rect{{0, 0, width, height}}}
}

func (b *guillotineBin) findBest(w, h float64) (idx int, pw, ph float64, fit fitness, ok bool) {
	idx = -1
	for i, r := range b.freeRects {
		for _, dims := range [2][2]float64{{w, h}, {h, w}} {
			cw, ch := dims[0], dims[1]
			if cw > r.w+epsilon || ch > r.h+epsilon {
				continue
			}
			short := minf(r.w-cw, r.h-ch)
			long := r.w - cw
			if r.h-ch > long {
				long = r.h - ch
			}
			f := fitness{short, long}
			if !ok || f.better(fit) {
				idx, pw, ph, fit, ok = i, cw, ch, f, true
			}
		}
	}
	return idx, pw, ph, fit, ok
}

func (b *guillotineBin) score(w, h float64) (fitness, bool) {
	_, _, _, fit, ok := b.findBest(w, h)
	return fit, ok
}

func (b *guillotineBin) insert(w, h float64) (rect, bool) {
	idx, pw, ph, _, ok := b.findBest(w, h)
	if !ok {
		return rect{}, false
	}
	chosen := b.freeRects[idx]
	b.freeRects = append(b.freeRects[:idx], b.freeRects[idx+1:]...)

	placed := rect{x: chosen.x, y: chosen.y, w: pw, h: ph}

	// Shorter-axis split: the thin leftover strip stays attached to the
	// placed piece's edge, the fat one keeps the full span.
	rightW := chosen.w - pw
	topH := chosen.h - ph
	var right, top rect
	if rightW < topH {
		right = rect{x: chosen.x + pw, y: chosen.y, w: rightW, h: ph}
		top = rect{x: chosen.x, y: chosen.y + ph, w: chosen.w, h: topH}
	} else {
		right = rect{x: chosen.x + pw, y: chosen.y, w: rightW, h: chosen.h}
		top = rect{x: chosen.x, y: chosen.y + ph, w: pw, h: topH}
	}
	if right.w > epsilon && right.h > epsilon {
		b.freeRects = append(b.freeRects, right)
	}
	if top.w > epsilon && top.h > epsilon {
		b.freeRects = append(b.freeRects, top)
	}
	return placed, true
}
