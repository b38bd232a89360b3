package nest

// skylineBin packs one sheet with the bottom-left skyline scheme: free
// space is tracked as a left-to-right height envelope, and every piece is
// dropped at the position minimizing its resulting top edge.
type skylineBin struct {
	width, height float64
	// segments partition [0, width) left to right; each records the
	// skyline height over its span.
	segments []skySegment
}

type skySegment struct {
	x, w, y float64
}

func newSkylineBin(width, height float64) *skylineBin {
	return &skylineBin{
		width:   width,
		height:  height,
		segments: []skySegment{{x: 0, w: width, y: 0}},
	}
}

// fitAt returns the landing height for a piece of width w dropped with
// its left edge at segment i, or false if it overhangs the sheet.
func (b *skylineBin) fitAt(i int, w float64) (float64, bool) {
	x := b.segments[i].x
	if x+w > b.width+epsilon {
		return 0, false
	}
	y := b.segments[i].y
	remaining := w
	for j := i; j < len(b.segments) && remaining > epsilon; j++ {
		if b.segments[j].y > y {
			y = b.segments[j].y
		}
		remaining -= b.segments[j].w
	}
	if remaining > epsilon {
		return 0, false
	}
	return y, true
}

// findBest returns the lowest-then-leftmost landing spot over both
// orientations.
func (b *skylineBin) findBest(w, h float64) (pos rect, fit fitness, ok bool) {
	for _, dims := range [2][2]float64{{w, h}, {h, w}} {
		cw, ch := dims[0], dims[1]
		for i := range b.segments {
			y, fits := b.fitAt(i, cw)
			if !fits || y+ch > b.height+epsilon {
				continue
			}
			f := fitness{y + ch, b.segments[i].x}
			if !ok || f.better(fit) {
				pos = rect{x: b.segments[i].x, y: y, w: cw, h: ch}
				fit = f
				ok = true
			}
		}
	}
	return pos, fit, ok
}

func (b *skylineBin) score(w, h float64) (fitness, bool) {
	_, fit, ok := b.findBest(w, h)
	return fit, ok
}

func (b *skylineBin) insert(w, h float64) (rect, bool) {
	pos, _, ok := b.findBest(w, h)
	if !ok {
		return rect{}, false
	}
	b.raise(pos.x, pos.w, pos.y+pos.h)
	return pos, true
}

// raise lifts the skyline to top over [x, x+w), splitting and merging
// segments as needed.
func (b *skylineBin) raise(x, w, top float64) {
	var out []skySegment
	end := x + w
	for _, s := range b.segments {
		sEnd := s.x + s.w
		if sEnd <= x+epsilon || s.x >= end-epsilon {
			out = append(out, s)
			continue
		}
		// Portion left of the raised span survives unchanged.
		if s.x < x-epsilon {
			out = append(out, skySegment{x: s.x, w: x - s.x, y: s.y})
		}
		// Portion right of the raised span survives unchanged.
		if sEnd > end+epsilon {
			out = append(out, skySegment{x: end, w: sEnd - end, y: s.y})
		}
	}
	out = append(out, skySegment{x: x, w: w, y: top})

	// Restore left-to-right order and merge equal-height neighbours.
	sortSegments(out)
	b.segments = mergeSegments(out)
}

func sortSegments(segs []skySegment) {
	for i := 1; i < len(segs); i++ {
		for j := i; j > 0 && segs[j].x < segs[j-1].x; j-- {
			segs[j], segs[j-1] = segs[j-1], segs[j]
		}
	}
}

func mergeSegments(segs []skySegment) []skySegment {
	if len(segs) == 0 {
		return segs
	}
	out := segs[:1]
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if abs(last.y-s.y) < epsilon {
			last.w += s.w
			continue
		}
		out = append(out, s)
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
