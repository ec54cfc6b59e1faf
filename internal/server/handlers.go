package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/report"
	"github.com/alexiusacademia/goframe/internal/structfile"
	"go.uber.org/zap"
)

// SolveResponse is returned by POST /api/solve
type SolveResponse struct {
	Results     *frame.AnalysisResults `json:"results"`
	Equilibrium frame.Equilibrium      `json:"equilibrium"`
}

// CombinationsRequest is the body of POST /api/combinations
type CombinationsRequest struct {
	Structure frame.Structure `json:"structure"`
	Set       string          `json:"set"` // "full" (default) or "simplified"
}

// ReportRequest is the body of POST /api/report
type ReportRequest struct {
	report.Input
	Structure    frame.Structure `json:"structure"`
	Combinations bool            `json:"combinations"`
	Diagram      bool            `json:"diagram"`
}

// decode reads a JSON body into v, limited to the configured size
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

// solve normalizes and solves a structure, recording metrics
func (s *Server) solve(st frame.Structure) (frame.Structure, *frame.AnalysisResults, error) {
	st, err := structfile.Normalize(st)
	if err != nil {
		return st, nil, err
	}
	start := time.Now()
	res, err := s.solver.Solve(st)
	s.metrics.RecordSolve(err, st.DOFCount(), time.Since(start))
	return st, res, err
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var st frame.Structure
	if err := s.decode(w, r, &st); err != nil {
		s.writeError(w, r, err)
		return
	}

	st, res, err := s.solve(st)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SolveResponse{Results: res, Equilibrium: frame.CheckEquilibrium(st, res)})
}

func combinationSet(name string) ([]nscp.LoadCombination, error) {
	switch name {
	case "", "full":
		return nscp.LoadCombinations, nil
	case "simplified":
		return nscp.SimplifiedCombinations, nil
	}
	return nil, fmt.Errorf("%w: unknown combination set %q", errMalformed, name)
}

func (s *Server) handleCombinations(w http.ResponseWriter, r *http.Request) {
	var req CombinationsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	combos, err := combinationSet(req.Set)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := structfile.Normalize(req.Structure)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	out, err := nscp.Analyze(s.solver, st, combos)
	s.metrics.RecordSolve(err, st.DOFCount(), time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	st, res, err := s.solve(req.Structure)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := report.Data{Input: req.Input, Structure: st, Results: res, Diagram: req.Diagram}
	if req.Combinations {
		if data.Combinations, err = nscp.Analyze(s.solver, st, nscp.LoadCombinations); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	// Render to a buffer so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := report.Write(&buf, data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("writing report", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
