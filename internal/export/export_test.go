package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/pipeline"
	"github.com/piwi3910/StairCut/internal/stair"
)

func layoutFixture() (model.NestResult, model.StockSheet) {
	outer := model.Outline{{X: 0, Y: 0}, {X: 600, Y: 0}, {X: 600, Y: 400}, {X: 0, Y: 400}}
	hole := model.Outline{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200}}
	result := model.NestResult{
		Algorithm:  "MaxRectsBaf",
		Efficiency: 31.5,
		SheetCount: 2,
		Sheets: map[int]model.SheetLayout{
			0: {
				Efficiency: 42.0,
				Parts: []model.Placement{
					{PartID: 1, Name: "treads_1", X: 10, Y: 10, Width: 600, Height: 400,
						Outer: outer, Holes: []model.Outline{hole}},
					{PartID: 2, Name: "risers_1", X: 650, Y: 10, Width: 500, Height: 200,
						Rotated: true,
						Outer: model.Outline{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 500}, {X: 0, Y: 500}}},
				},
			},
			1: {
				Efficiency: 21.0,
				Parts: []model.Placement{
					{PartID: 3, Name: "stringers_1_A", X: 10, Y: 10, Width: 1100, Height: 240,
						Outer: model.Outline{{X: 0, Y: 0}, {X: 1100, Y: 0}, {X: 1100, Y: 240}, {X: 0, Y: 240}}},
				},
			},
		},
		Unpacked: []int{9},
	}
	stock := model.StockSheet{Width: 2440, Height: 1220, Material: "ply_18mm", Thickness: 18}
	return result, stock
}

func TestCollectLabelInfos(t *testing.T) {
	result, _ := layoutFixture()
	labels := CollectLabelInfos(result)
	require.Len(t, labels, 3)
	assert.Equal(t, 1, labels[0].Sheet)
	assert.Equal(t, 2, labels[2].Sheet)
	assert.Equal(t, "risers_1", labels[1].Name)
	assert.True(t, labels[1].Rotated)
}

func TestExportLabelsCreatesFile(t *testing.T) {
	result, _ := layoutFixture()
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, result))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportLabelsEmptyResult(t *testing.T) {
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), model.NestResult{})
	assert.Error(t, err)
}

func TestExportPDFCreatesFile(t *testing.T) {
	result, stock := layoutFixture()
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, result, stock))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportDXFCreatesFile(t *testing.T) {
	result, stock := layoutFixture()
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, ExportDXF(path, result, stock))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "LWPOLYLINE")
	assert.Contains(t, content, "treads_1")
}

func TestExportDXFEmptyResult(t *testing.T) {
	_, stock := layoutFixture()
	err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), model.NestResult{}, stock)
	assert.Error(t, err)
}

func TestExportProfilesDXF(t *testing.T) {
	parts := []model.Part{
		{ID: 1, Name: "treads_1", Width: 600, Height: 400,
			Outer: model.Outline{{X: 0, Y: 0}, {X: 600, Y: 0}, {X: 600, Y: 400}, {X: 0, Y: 400}}},
	}
	path := filepath.Join(t.TempDir(), "profiles.dxf")
	require.NoError(t, ExportProfilesDXF(path, parts))
	assert.Error(t, ExportProfilesDXF(filepath.Join(t.TempDir(), "y.dxf"), nil))
}

func TestWriteSVG(t *testing.T) {
	result, stock := layoutFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, result, stock))

	content := buf.String()
	assert.Contains(t, content, "<svg")
	assert.Contains(t, content, "polygon")
	assert.Contains(t, content, "treads_1")
	// The hole loop renders dashed.
	assert.Contains(t, content, "stroke-dasharray")
}

func TestWriteCutListCSV(t *testing.T) {
	result, _ := layoutFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteCutListCSV(&buf, result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header + 3 placements + 1 unpacked.
	require.Len(t, lines, 5)
	assert.Equal(t, "id,name,width_mm,height_mm,sheet,x_mm,y_mm,rotated", lines[0])
	assert.Contains(t, lines[2], "risers_1")
	assert.Contains(t, lines[2], "true")
	assert.True(t, strings.HasPrefix(lines[4], "9,"))
}

func TestExportBOM(t *testing.T) {
	res, err := pipeline.NewRunner(nil).Execute(stair.DefaultConfig(), pipeline.DefaultSheet())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bom.xlsx")
	require.NoError(t, ExportBOM(path, res))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, ExportBOM(filepath.Join(t.TempDir(), "z.xlsx"), nil))
}
