// Package server exposes the staircase pipeline over HTTP: defaults,
// Part K validation, nesting runs and exported cutting artifacts.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/StairCut/internal/pipeline"
)

// Server wires the pipeline to an HTTP listener.
type Server struct {
	addr   string
	log    *zap.Logger
	runner *pipeline.Runner
	http   *http.Server
}

// New creates a server bound to addr.
func New(addr string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		addr:   addr,
		log:    log,
		runner: pipeline.NewRunner(log),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/defaults", s.handleDefaults)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/nest", s.handleNest)
	mux.HandleFunc("/manifest", s.handleManifest)
	mux.HandleFunc("/export/dxf", s.handleExportDXF)
	mux.HandleFunc("/export/svg", s.handleExportSVG)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", zap.String("addr", s.addr))
	return s.http.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func methodIs(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", methods[0])
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}
