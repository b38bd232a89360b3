// Package pipeline orchestrates one manufacturing run: build the
// staircase, flatten each component to a 2D profile, split panels that
// exceed the stock sheet, and nest every material group onto its own
// sheet pool.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/nest"
	"github.com/piwi3910/StairCut/internal/profile"
	"github.com/piwi3910/StairCut/internal/scarf"
	"github.com/piwi3910/StairCut/internal/stair"
)

// ErrInvalidSheet marks a rejected stock sheet specification.
var ErrInvalidSheet = errors.New("invalid sheet size")

// SheetSpec describes the stock sheets a run nests onto.
type SheetSpec struct {
	Width   float64 `json:"sheetWidth"`
	Height  float64 `json:"sheetHeight"`
	Spacing float64 `json:"spacing"`
}

// DefaultSheet is a standard 2440x1220 board with 8 mm kerf spacing.
func DefaultSheet() SheetSpec {
	return SheetSpec{Width: 2440, Height: 1220, Spacing: 8}
}

// MaterialGroup ties manufacturing categories to one stock material, so
// parts of the same thickness share a sheet pool.
type MaterialGroup struct {
	Name       string           `json:"name"`
	Thickness  float64          `json:"thickness"`
	Categories []stair.Category `json:"categories"`
}

// MaterialGroups returns the stock breakdown for a structural staircase:
// 20 mm timber skin, 50 mm structural softwood, 18 mm plywood formers.
func MaterialGroups() []MaterialGroup {
	return []MaterialGroup{
		{
			Name:       "timber_20mm",
			Thickness:  20,
			Categories: []stair.Category{stair.CategoryTread, stair.CategoryRiser},
		},
		{
			Name:       "structural_50mm",
			Thickness:  50,
			Categories: []stair.Category{stair.CategoryStringer, stair.CategoryCarriage},
		},
		{
			Name:       "ply_18mm",
			Thickness:  18,
			Categories: []stair.Category{stair.CategoryRib, stair.CategoryPlaster},
		},
	}
}

// GroupResult holds the flattened parts and the nesting layout for one
// material group.
type GroupResult struct {
	Material  string           `json:"material"`
	Thickness float64          `json:"thickness"`
	Parts     []model.Part     `json:"parts"`
	Skipped   []string         `json:"skipped,omitempty"`
	Nesting   model.NestResult `json:"nesting"`
	Offcuts   []model.Offcut   `json:"offcuts,omitempty"`
}

// Stock describes the stock sheet this group nests onto.
func (g GroupResult) Stock(sheet SheetSpec) model.StockSheet {
	return model.StockSheet{
		Width:     sheet.Width,
		Height:    sheet.Height,
		Material:  g.Material,
		Thickness: g.Thickness,
	}
}

// Result is the outcome of a full manufacturing run.
type Result struct {
	Config   stair.Config   `json:"config"`
	Sheet    SheetSpec      `json:"sheet"`
	Groups   []GroupResult  `json:"groups"`
	Manifest stair.Manifest `json:"manifest"`
}

// PartCount returns the number of nestable parts across all groups.
func (r *Result) PartCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Parts)
	}
	return n
}

// Runner executes manufacturing runs.
type Runner struct {
	log *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Execute builds the staircase for cfg and nests every material group
// onto sheets. Profile extraction failures skip the affected part and
// are reported in the group's Skipped list; a failed panel split aborts
// the whole run.
func (r *Runner) Execute(cfg stair.Config, sheet SheetSpec) (*Result, error) {
	if sheet.Width <= 0 || sheet.Height <= 0 {
		return nil, fmt.Errorf("%w: %.0fx%.0f", ErrInvalidSheet, sheet.Width, sheet.Height)
	}
	if sheet.Spacing < 0 {
		sheet.Spacing = 0
	}

	asm, err := stair.BuildStructural(cfg)
	if err != nil {
		return nil, err
	}
	r.log.Info("staircase built",
		zap.Int("components", asm.Count()),
		zap.Float64("totalRise", cfg.TotalRise()))

	res := &Result{
		Config:   cfg,
		Sheet:    sheet,
		Manifest: stair.BuildManifest(cfg, asm),
	}
	byCat := asm.ByCategory()
	nextID := 1
	for _, group := range MaterialGroups() {
		gr, err := r.runGroup(group, byCat, sheet, &nextID)
		if err != nil {
			return nil, fmt.Errorf("material group %s: %w", group.Name, err)
		}
		res.Groups = append(res.Groups, gr)
	}
	return res, nil
}

func (r *Runner) runGroup(group MaterialGroup, byCat map[stair.Category][]stair.Component,
	sheet SheetSpec, nextID *int) (GroupResult, error) {

	gr := GroupResult{Material: group.Name, Thickness: group.Thickness}
	maxDim := sheet.Width
	if sheet.Height > maxDim {
		maxDim = sheet.Height
	}

	for _, cat := range group.Categories {
		for _, comp := range byCat[cat] {
			segments, err := scarf.Split(comp.Solid, maxDim)
			if err != nil {
				return GroupResult{}, fmt.Errorf("split %s: %w", comp.Name, err)
			}
			if len(segments) > 1 {
				r.log.Info("panel split for stock size",
					zap.String("part", comp.Name),
					zap.Int("segments", len(segments)))
			}
			for i, seg := range segments {
				name := comp.Name
				if len(segments) > 1 {
					name = fmt.Sprintf("%s_%s", comp.Name, scarf.SegmentSuffix(i))
				}
				p2d := profile.Extract(seg)
				if p2d == nil {
					r.log.Warn("profile extraction failed, part skipped",
						zap.String("part", name))
					gr.Skipped = append(gr.Skipped, name)
					continue
				}
				if p2d.SkippedEdges > 0 {
					r.log.Debug("degenerate boundary edges dropped",
						zap.String("part", name),
						zap.Int("edges", p2d.SkippedEdges))
				}
				gr.Parts = append(gr.Parts, model.Part{
					ID:       *nextID,
					Name:     name,
					Width:    p2d.Width,
					Height:   p2d.Height,
					Outer:    p2d.Outer,
					Holes:    p2d.Holes,
					Category: string(cat),
				})
				*nextID++
			}
		}
	}

	gr.Nesting = nest.Nest(gr.Parts, sheet.Width, sheet.Height, sheet.Spacing)
	gr.Offcuts = model.DetectAllOffcuts(gr.Nesting, gr.Stock(sheet), sheet.Spacing)
	r.log.Info("material group nested",
		zap.String("material", group.Name),
		zap.Int("parts", len(gr.Parts)),
		zap.String("algorithm", gr.Nesting.Algorithm),
		zap.Int("sheets", gr.Nesting.SheetCount),
		zap.Float64("efficiency", gr.Nesting.Efficiency))
	return gr, nil
}

// NestParts nests an explicit part list, bypassing stair generation.
// Used for imported profiles.
func (r *Runner) NestParts(parts []model.Part, sheet SheetSpec) model.NestResult {
	if sheet.Spacing < 0 {
		sheet.Spacing = 0
	}
	return nest.Nest(parts, sheet.Width, sheet.Height, sheet.Spacing)
}
