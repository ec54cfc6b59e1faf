// Package frame implements linear static analysis of planar frames by the
// direct stiffness method: member stiffness assembly, support restraint,
// solution of the reduced system and recovery of support reactions.
package frame

import (
	"go.uber.org/zap"
)

// Solver runs the analysis pipeline. The zero value is not usable; create
// one with NewSolver. A Solver holds no per-call state and may be shared.
type Solver struct {
	Logger         *zap.Logger
	ConditionLimit float64 // largest accepted condition estimate of K_ff
}

// NewSolver creates a solver that logs to logger (nil disables logging)
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		Logger:         logger,
		ConditionLimit: DefaultConditionLimit,
	}
}

var defaultSolver = NewSolver(nil)

// Solve analyses s with the default solver settings
func Solve(s Structure) (*AnalysisResults, error) {
	return defaultSolver.Solve(s)
}

// Solve computes the support reactions of s. The structure is only read.
// Errors are *ValidationError, *FullyConstrainedError or *SingularMatrixError.
func (sv *Solver) Solve(s Structure) (*AnalysisResults, error) {
	log := sv.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := sv.ConditionLimit
	if limit <= 0 {
		limit = DefaultConditionLimit
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	results := &AnalysisResults{Reactions: []Reaction{}}
	n := s.DOFCount()
	if n == 0 {
		return results, nil
	}

	index := s.NodeIndex()
	sys := assemble(s, index)
	for _, skipped := range sys.Skipped {
		log.Warn("degenerate member excluded from assembly",
			zap.String("member", skipped.MemberID),
			zap.String("reason", skipped.Reason))
	}
	results.SkippedMembers = sys.Skipped

	p := partitionDOF(n, restrainedDOF(s, index))
	log.Debug("system assembled",
		zap.Int("nodes", len(s.Nodes)),
		zap.Int("members", len(s.Members)-len(sys.Skipped)),
		zap.Int("dof", n),
		zap.Int("free", len(p.Free)),
		zap.Int("restrained", len(p.Restrained)))

	kff, ff, err := reduce(sys, p)
	if err != nil {
		return nil, err
	}

	uf, err := solveLinear(kff, ff, limit)
	if err != nil {
		log.Debug("reduced system rejected", zap.Error(err))
		return nil, err
	}

	u := expand(n, p, uf)
	results.Reactions = recoverReactions(s, index, sys, u)
	return results, nil
}
