package nscp

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goframe/internal/frame"
)

// Factored returns a copy of s with every load scaled by the combination
// factor of its load case. Geometry and supports are unchanged.
func Factored(s frame.Structure, lc LoadCombination) (frame.Structure, error) {
	out := s.Clone()
	for i, pl := range out.PointLoads {
		c, err := ParseLoadCase(pl.Case)
		if err != nil {
			return frame.Structure{}, fmt.Errorf("point load %s: %w", pl.ID, err)
		}
		f := lc.Factor(c)
		out.PointLoads[i].Fx = f * pl.Fx
		out.PointLoads[i].Fy = f * pl.Fy
	}
	for i, ml := range out.MomentLoads {
		c, err := ParseLoadCase(ml.Case)
		if err != nil {
			return frame.Structure{}, fmt.Errorf("moment load %s: %w", ml.ID, err)
		}
		out.MomentLoads[i].Mz = lc.Factor(c) * ml.Mz
	}
	return out, nil
}

// CombinationResult holds the reactions under one factored combination
type CombinationResult struct {
	Combination LoadCombination        `json:"combination"`
	Results     *frame.AnalysisResults `json:"results"`
}

// Extreme is the governing value of one reaction component
type Extreme struct {
	Value       float64 `json:"value"`
	Combination string  `json:"combination"` // id of the governing combination
}

// Envelope holds the minimum and maximum reaction components of a support
// over all combinations
type Envelope struct {
	SupportID string  `json:"supportId"`
	NodeID    string  `json:"nodeId"`
	MinFx     Extreme `json:"minFx"`
	MaxFx     Extreme `json:"maxFx"`
	MinFy     Extreme `json:"minFy"`
	MaxFy     Extreme `json:"maxFy"`
	MinMz     Extreme `json:"minMz"`
	MaxMz     Extreme `json:"maxMz"`
}

// CombinationAnalysis is the outcome of Analyze
type CombinationAnalysis struct {
	Combinations []CombinationResult `json:"combinations"`
	Envelopes    []Envelope          `json:"envelopes"`
}

// Analyze solves s once per combination and builds the reaction envelope.
// The first failing combination aborts the analysis.
func Analyze(solver *frame.Solver, s frame.Structure, combinations []LoadCombination) (*CombinationAnalysis, error) {
	out := &CombinationAnalysis{}
	for _, lc := range combinations {
		factored, err := Factored(s, lc)
		if err != nil {
			return nil, err
		}
		res, err := solver.Solve(factored)
		if err != nil {
			return nil, fmt.Errorf("combination %s (%s): %w", lc.ID, lc.Description, err)
		}
		out.Combinations = append(out.Combinations, CombinationResult{Combination: lc, Results: res})
	}
	out.Envelopes = envelopes(s.Supports, out.Combinations)
	return out, nil
}

func envelopes(supports []frame.Support, results []CombinationResult) []Envelope {
	envs := make([]Envelope, len(supports))
	for i, sp := range supports {
		envs[i] = Envelope{SupportID: sp.ID, NodeID: sp.NodeID}
		low := Extreme{Value: math.Inf(1)}
		high := Extreme{Value: math.Inf(-1)}
		envs[i].MinFx, envs[i].MaxFx = low, high
		envs[i].MinFy, envs[i].MaxFy = low, high
		envs[i].MinMz, envs[i].MaxMz = low, high
	}

	for _, cr := range results {
		for i, rx := range cr.Results.Reactions {
			e := &envs[i]
			track(&e.MinFx, &e.MaxFx, rx.Fx, cr.Combination.ID)
			track(&e.MinFy, &e.MaxFy, rx.Fy, cr.Combination.ID)
			track(&e.MinMz, &e.MaxMz, rx.Mz, cr.Combination.ID)
		}
	}

	if len(results) == 0 {
		for i := range envs {
			envs[i] = Envelope{SupportID: envs[i].SupportID, NodeID: envs[i].NodeID}
		}
	}
	return envs
}

func track(low, high *Extreme, v float64, combo string) {
	if v < low.Value {
		*low = Extreme{Value: v, Combination: combo}
	}
	if v > high.Value {
		*high = Extreme{Value: v, Combination: combo}
	}
}
