// StairCut is a staircase manufacturing pipeline.
//
// Generates the structural parts of a quarter-turn staircase, flattens
// them to 2D profiles, nests them onto stock sheets and writes the
// cutting artifacts (DXF, SVG, CSV, PDF, labels, BOM).
//
// Usage:
//
//	staircut [flags] nest          run the full pipeline and write artifacts
//	staircut [flags] validate      check the configuration against Part K
//	staircut [flags] manifest      print the part manifest as JSON
//	staircut [flags] import F.dxf  nest profiles imported from a DXF file
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/piwi3910/StairCut/internal/config"
	"github.com/piwi3910/StairCut/internal/export"
	"github.com/piwi3910/StairCut/internal/gcode"
	"github.com/piwi3910/StairCut/internal/importer"
	"github.com/piwi3910/StairCut/internal/logger"
	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/pipeline"
	"github.com/piwi3910/StairCut/internal/project"
	"github.com/piwi3910/StairCut/internal/stair"
)

func main() {
	cfgPath := flag.String("config", "", "path to staircut.yaml (defaults to standard locations)")
	jobPath := flag.String("job", "", "job file to load before and save after a run")
	outDir := flag.String("out", "", "artifact output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	job := project.NewJob("staircase")
	if *jobPath != "" {
		loaded, err := project.LoadJob(*jobPath)
		if err == nil {
			job = loaded
		} else if !errors.Is(err, os.ErrNotExist) {
			logger.Fatal("load job", zap.String("path", *jobPath), zap.Error(err))
		}
	} else {
		job.Sheet = pipeline.SheetSpec{
			Width:   cfg.Sheet.Width,
			Height:  cfg.Sheet.Height,
			Spacing: cfg.Nesting.Spacing,
		}
	}

	command := flag.Arg(0)
	if command == "" {
		command = "nest"
	}

	switch command {
	case "nest":
		runNest(cfg, job, *jobPath)
	case "validate":
		runValidate(job.Stair)
	case "manifest":
		runManifest(job.Stair)
	case "import":
		runImport(flag.Arg(1), cfg, job.Sheet)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		flag.Usage()
		os.Exit(2)
	}
}

func runNest(cfg *config.Config, job project.Job, jobPath string) {
	runner := pipeline.NewRunner(logger.Log)
	res, err := runner.Execute(job.Stair, job.Sheet)
	if err != nil {
		logger.Fatal("pipeline run failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		logger.Fatal("create output directory", zap.Error(err))
	}

	for _, group := range res.Groups {
		if group.Nesting.SheetCount == 0 {
			logger.Warn("material group produced no sheets",
				zap.String("material", group.Material))
			continue
		}
		writeGroupArtifacts(cfg.Output.Dir, group, res)
	}

	bomPath := filepath.Join(cfg.Output.Dir, "bom.xlsx")
	if err := export.ExportBOM(bomPath, res); err != nil {
		logger.Error("write bom", zap.Error(err))
	}

	if jobPath != "" {
		job.LastResult = &res.Groups[0].Nesting
		if err := project.SaveJob(jobPath, job); err != nil {
			logger.Error("save job", zap.String("path", jobPath), zap.Error(err))
		}
	}

	logger.Info("run complete",
		zap.Int("parts", res.PartCount()),
		zap.String("outputDir", cfg.Output.Dir))
}

func writeGroupArtifacts(dir string, group pipeline.GroupResult, res *pipeline.Result) {
	stock := group.Stock(res.Sheet)
	base := filepath.Join(dir, group.Material)

	artifacts := []struct {
		path string
		run  func(string) error
	}{
		{base + ".dxf", func(p string) error { return export.ExportDXF(p, group.Nesting, stock) }},
		{base + ".svg", func(p string) error { return export.ExportSVG(p, group.Nesting, stock) }},
		{base + ".csv", func(p string) error { return export.ExportCutListCSV(p, group.Nesting) }},
		{base + ".pdf", func(p string) error { return export.ExportPDF(p, group.Nesting, stock) }},
		{base + "_labels.pdf", func(p string) error { return export.ExportLabels(p, group.Nesting) }},
	}
	for _, a := range artifacts {
		if err := a.run(a.path); err != nil {
			logger.Error("write artifact", zap.String("path", a.path), zap.Error(err))
		}
	}

	writeToolpaths(base, group.Nesting, stock)
}

// writeToolpaths emits one G-code program per sheet, after warning about
// any toolpath clearance conflicts in the layout.
func writeToolpaths(base string, nesting model.NestResult, stock model.StockSheet) {
	settings := gcode.DefaultSettings()
	for _, w := range gcode.FormatClearanceWarnings(gcode.CheckClearance(nesting, stock, settings)) {
		logger.Warn(w)
	}

	programs, err := gcode.NewGenerator(settings).GenerateAll(nesting, stock)
	if err != nil {
		logger.Error("generate toolpaths", zap.String("material", stock.Material), zap.Error(err))
		return
	}
	for i, prog := range programs {
		path := fmt.Sprintf("%s_sheet%d.nc", base, i+1)
		if err := os.WriteFile(path, []byte(prog), 0644); err != nil {
			logger.Error("write toolpath", zap.String("path", path), zap.Error(err))
		}
	}
}

func runValidate(cfg stair.Config) {
	issues := stair.CheckPartK(cfg.Rise, cfg.Going)
	if len(issues) == 0 {
		fmt.Printf("compliant: rise %.0fmm, going %.0fmm, pitch %.1f°\n",
			cfg.Rise, cfg.Going, cfg.Pitch())
		return
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	os.Exit(1)
}

func runManifest(cfg stair.Config) {
	asm, err := stair.BuildStructural(cfg)
	if err != nil {
		logger.Fatal("build staircase", zap.Error(err))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stair.BuildManifest(cfg, asm)); err != nil {
		logger.Fatal("encode manifest", zap.Error(err))
	}
}

func runImport(path string, cfg *config.Config, sheet pipeline.SheetSpec) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "import requires a DXF file argument")
		os.Exit(2)
	}

	res := importer.ImportDXF(path)
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			logger.Error(e)
		}
		os.Exit(1)
	}

	nested := pipeline.NewRunner(logger.Log).NestParts(res.Parts, sheet)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nested); err != nil {
		logger.Fatal("encode result", zap.Error(err))
	}
}
