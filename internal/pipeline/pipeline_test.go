package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/stair"
)

func TestExecuteDefaultStaircase(t *testing.T) {
	r := NewRunner(nil)
	res, err := r.Execute(stair.DefaultConfig(), DefaultSheet())
	require.NoError(t, err)

	require.Len(t, res.Groups, 3)
	assert.Equal(t, "timber_20mm", res.Groups[0].Material)
	assert.Equal(t, "structural_50mm", res.Groups[1].Material)
	assert.Equal(t, "ply_18mm", res.Groups[2].Material)

	for _, g := range res.Groups {
		assert.NotEmpty(t, g.Parts, g.Material)
		assert.NotEqual(t, "None", g.Nesting.Algorithm, g.Material)
		assert.Greater(t, g.Nesting.SheetCount, 0, g.Material)
	}

	// 14 treads and 14 risers flatten into the timber group.
	timber := res.Groups[0]
	treads, risers := 0, 0
	for _, p := range timber.Parts {
		switch p.Category {
		case string(stair.CategoryTread):
			treads++
		case string(stair.CategoryRiser):
			risers++
		}
	}
	assert.Equal(t, 14, treads)
	assert.Equal(t, 14, risers)

	assert.Equal(t, res.PartCount(), countIDs(t, res))
	assert.NotZero(t, res.Manifest.PartCount)
	assert.Greater(t, res.Manifest.Volume, 0.0)
}

// countIDs verifies ids are unique across all material groups and
// returns how many there are.
func countIDs(t *testing.T, res *Result) int {
	t.Helper()
	seen := map[int]bool{}
	for _, g := range res.Groups {
		for _, p := range g.Parts {
			require.False(t, seen[p.ID], "duplicate id %d", p.ID)
			seen[p.ID] = true
		}
	}
	return len(seen)
}

func TestExecuteSplitsOversizedPanels(t *testing.T) {
	r := NewRunner(nil)
	// A short sheet forces the long stringers to be split.
	res, err := r.Execute(stair.DefaultConfig(), SheetSpec{Width: 1200, Height: 800, Spacing: 8})
	require.NoError(t, err)

	structural := res.Groups[1]
	split := 0
	for _, p := range structural.Parts {
		if strings.HasSuffix(p.Name, "_A") || strings.HasSuffix(p.Name, "_B") {
			split++
		}
	}
	assert.Greater(t, split, 0, "expected at least one split stringer segment")

	// Every nested part in every group is accounted for exactly once.
	for _, g := range res.Groups {
		assert.Equal(t, len(g.Parts), g.Nesting.PlacedCount()+len(g.Nesting.Unpacked),
			g.Material)
	}
}

func TestExecuteRejectsInvalidConfig(t *testing.T) {
	cfg := stair.DefaultConfig()
	cfg.Rise = 500
	_, err := NewRunner(nil).Execute(cfg, DefaultSheet())
	assert.Error(t, err)
}

func TestExecuteRejectsInvalidSheet(t *testing.T) {
	_, err := NewRunner(nil).Execute(stair.DefaultConfig(), SheetSpec{})
	assert.Error(t, err)
}

func TestNestPartsDirect(t *testing.T) {
	parts := []model.Part{
		{ID: 1, Name: "panel_1", Width: 400, Height: 300,
			Outer: model.Outline{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 300}, {X: 0, Y: 300}}},
	}
	res := NewRunner(nil).NestParts(parts, DefaultSheet())
	assert.Equal(t, 1, res.SheetCount)
	assert.Equal(t, 1, res.PlacedCount())
}

func TestExecuteReportsOffcuts(t *testing.T) {
	res, err := NewRunner(nil).Execute(stair.DefaultConfig(), DefaultSheet())
	require.NoError(t, err)

	for _, g := range res.Groups {
		for _, o := range g.Offcuts {
			assert.Equal(t, g.Material, o.Material)
			assert.GreaterOrEqual(t, o.X, 0.0)
			assert.GreaterOrEqual(t, o.Y, 0.0)
			assert.LessOrEqual(t, o.X+o.Width, res.Sheet.Width+1e-6)
			assert.LessOrEqual(t, o.Y+o.Height, res.Sheet.Height+1e-6)
			assert.GreaterOrEqual(t, o.Area(), model.MinOffcutArea)
		}
	}
}
