package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/piwi3910/StairCut/internal/export"
	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/pipeline"
	"github.com/piwi3910/StairCut/internal/stair"
)

// runRequest is the body for nesting and export endpoints. A missing
// config or sheet falls back to defaults.
type runRequest struct {
	Config *stair.Config       `json:"config,omitempty"`
	Sheet  *pipeline.SheetSpec `json:"sheet,omitempty"`
	// Material selects one group for single-artifact exports.
	Material string `json:"material,omitempty"`
}

func (req *runRequest) resolve() (stair.Config, pipeline.SheetSpec) {
	cfg := stair.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}
	sheet := pipeline.DefaultSheet()
	if req.Sheet != nil {
		sheet = *req.Sheet
	}
	return cfg, sheet
}

func (s *Server) decodeRunRequest(w http.ResponseWriter, r *http.Request) (*runRequest, bool) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return nil, false
		}
	}
	return &req, true
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodGet) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"config": stair.DefaultConfig(),
		"sheet":  pipeline.DefaultSheet(),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodPost) {
		return
	}
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}
	cfg, _ := req.resolve()

	issues := stair.CheckPartK(cfg.Rise, cfg.Going)
	if issues == nil {
		issues = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  len(issues) == 0,
		"issues": issues,
		"pitch":  cfg.Pitch(),
	})
}

func (s *Server) handleNest(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodPost) {
		return
	}
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}
	cfg, sheet := req.resolve()

	res, err := s.runner.Execute(cfg, sheet)
	if err != nil {
		s.respondRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	cfg := stair.DefaultConfig()
	if r.Method == http.MethodPost {
		req, ok := s.decodeRunRequest(w, r)
		if !ok {
			return
		}
		cfg, _ = req.resolve()
	}

	asm, err := stair.BuildStructural(cfg)
	if err != nil {
		s.respondRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stair.BuildManifest(cfg, asm))
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodPost) {
		return
	}
	group, stock, ok := s.runForExport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.svg", group.Material))
	if err := export.WriteSVG(w, group.Nesting, stock); err != nil {
		s.log.Error("write svg", zap.Error(err))
	}
}

func (s *Server) handleExportDXF(w http.ResponseWriter, r *http.Request) {
	if !methodIs(w, r, http.MethodPost) {
		return
	}
	group, stock, ok := s.runForExport(w, r)
	if !ok {
		return
	}

	// The DXF writer works on files; stage the drawing in a temp dir.
	dir, err := os.MkdirTemp("", "staircut-dxf")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, group.Material+".dxf")
	if err := export.ExportDXF(path, group.Nesting, stock); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/dxf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.dxf", group.Material))
	http.ServeFile(w, r, path)
}

// runForExport executes the pipeline and picks the requested material
// group.
func (s *Server) runForExport(w http.ResponseWriter, r *http.Request) (pipeline.GroupResult, model.StockSheet, bool) {
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return pipeline.GroupResult{}, model.StockSheet{}, false
	}
	cfg, sheet := req.resolve()

	res, err := s.runner.Execute(cfg, sheet)
	if err != nil {
		s.respondRunError(w, err)
		return pipeline.GroupResult{}, model.StockSheet{}, false
	}

	group := res.Groups[0]
	if req.Material != "" {
		found := false
		for _, g := range res.Groups {
			if g.Material == req.Material {
				group, found = g, true
				break
			}
		}
		if !found {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("unknown material group %q", req.Material))
			return pipeline.GroupResult{}, model.StockSheet{}, false
		}
	}
	if group.Nesting.SheetCount == 0 {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("material group %q has no nested sheets", group.Material))
		return pipeline.GroupResult{}, model.StockSheet{}, false
	}

	return group, group.Stock(sheet), true
}

// respondRunError maps pipeline failures to status codes: rejected
// input is the caller's fault, anything else is ours.
func (s *Server) respondRunError(w http.ResponseWriter, err error) {
	if stair.IsConfigError(err) || errors.Is(err, pipeline.ErrInvalidSheet) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("pipeline run failed", zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, err.Error())
}
