package nest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicNames(t *testing.T) {
	assert.Equal(t, "MaxRectsBaf", MaxRectsBAF.String())
	assert.Equal(t, "MaxRectsBl", MaxRectsBL.String())
	assert.Equal(t, "SkylineBl", SkylineBL.String())
	assert.Equal(t, "GuillotineBssf", GuillotineBSSF.String())
	assert.Len(t, Heuristics(), 4)
}

func TestMaxRectsBinFillsCorner(t *testing.T) {
	bin := newMaxRectsBin(100, 100, false)
	r, ok := bin.insert(40, 30)
	require.True(t, ok)
	assert.Zero(t, r.x)
	assert.Zero(t, r.y)

	// The placed area is gone: a full-size piece no longer fits.
	_, ok = bin.score(100, 100)
	assert.False(t, ok)
	_, ok = bin.score(60, 100)
	assert.True(t, ok)
}

func TestMaxRectsBinRotatesToFit(t *testing.T) {
	bin := newMaxRectsBin(100, 50, false)
	r, ok := bin.insert(40, 90)
	require.True(t, ok)
	assert.InDelta(t, 90, r.w, 1e-9)
	assert.InDelta(t, 40, r.h, 1e-9)
}

func TestSkylineBinRaisesProfile(t *testing.T) {
	bin := newSkylineBin(100, 100)
	a, ok := bin.insert(60, 20)
	require.True(t, ok)
	assert.Zero(t, a.y)

	// A wide piece now lands on top of the first one.
	b, ok := bin.insert(80, 20)
	require.True(t, ok)
	assert.InDelta(t, 20, b.y, 1e-9)

	// A small piece still drops into the untouched right column.
	c, ok := bin.insert(20, 20)
	require.True(t, ok)
	assert.Zero(t, c.y)
	assert.InDelta(t, 80, c.x, 1e-9)
}

func TestGuillotineBinSplitsLeftover(t *testing.T) {
	bin := newGuillotineBin(100, 100)
	_, ok := bin.insert(60, 40)
	require.True(t, ok)

	// Both leftover strips remain usable.
	_, ok = bin.insert(40, 40)
	assert.True(t, ok)
	_, ok = bin.insert(100, 60)
	assert.True(t, ok)
	_, ok = bin.insert(10, 10)
	assert.False(t, ok)
}

func TestPruneContainedKeepsCoincidentRects(t *testing.T) {
	inner := rect{x: 10, y: 10, w: 50, h: 50}
	outer := rect{x: 0, y: 0, w: 100, h: 100}
	kept := pruneContained([]rect{inner, outer})
	require.Len(t, kept, 1)
	assert.Equal(t, outer, kept[0])

	// Coinciding free rects contain each other; exactly one survives,
	// or the bin would lose that free space entirely.
	dup := rect{x: 200, y: 50, w: 400, h: 300}
	kept = pruneContained([]rect{dup, dup})
	require.Len(t, kept, 1)
	assert.Equal(t, dup, kept[0])

	kept = pruneContained([]rect{outer, dup, dup, inner})
	require.Len(t, kept, 2)
	assert.Contains(t, kept, outer)
	assert.Contains(t, kept, dup)
}

func TestPackOpensNewBinWhenFull(t *testing.T) {
	pieces := []pieceRect{
		{id: 1, w: 90, h: 90},
		{id: 2, w: 90, h: 90},
	}
	rects := MaxRectsBAF.pack(pieces, 100, 100)
	require.Len(t, rects, 2)
	bins := map[int]bool{}
	for _, r := range rects {
		bins[r.bin] = true
	}
	assert.Len(t, bins, 2)
}

func TestPackRespectsSheetCap(t *testing.T) {
	var pieces []pieceRect
	for i := 0; i < maxSheets+10; i++ {
		pieces = append(pieces, pieceRect{id: i, w: 90, h: 90})
	}
	rects := SkylineBL.pack(pieces, 100, 100)
	assert.Len(t, rects, maxSheets)
	for _, r := range rects {
		assert.Less(t, r.bin, maxSheets)
	}
}
