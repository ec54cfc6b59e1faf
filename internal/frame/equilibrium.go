package frame

import "math"

// EquilibriumTolerance is the relative tolerance used by CheckEquilibrium
const EquilibriumTolerance = 1e-6

// Equilibrium holds the resultant of applied loads plus reactions.
// All three sums are zero for a structure in static equilibrium.
type Equilibrium struct {
	SumFx float64 `json:"sumFx"` // kN
	SumFy float64 `json:"sumFy"` // kN
	SumMz float64 `json:"sumMz"` // kN-m, about the origin
	Scale float64 `json:"scale"` // largest force or moment magnitude involved
	OK    bool    `json:"ok"`
}

// CheckEquilibrium sums forces and moments about the origin from the applied
// loads of s and the reactions in r.
func CheckEquilibrium(s Structure, r *AnalysisResults) Equilibrium {
	index := s.NodeIndex()
	var eq Equilibrium

	add := func(nodeID string, fx, fy, mz float64) {
		n := s.Nodes[index[nodeID]]
		m := mz + n.X*fy - n.Y*fx
		eq.SumFx += fx
		eq.SumFy += fy
		eq.SumMz += m
		eq.Scale = math.Max(eq.Scale, math.Max(math.Abs(fx), math.Max(math.Abs(fy), math.Abs(m))))
	}

	for _, pl := range s.PointLoads {
		add(pl.NodeID, pl.Fx, pl.Fy, 0)
	}
	for _, ml := range s.MomentLoads {
		add(ml.NodeID, 0, 0, ml.Mz)
	}
	if r != nil {
		for _, rx := range r.Reactions {
			add(rx.NodeID, rx.Fx, rx.Fy, rx.Mz)
		}
	}

	tol := EquilibriumTolerance * math.Max(1, eq.Scale)
	eq.OK = math.Abs(eq.SumFx) <= tol && math.Abs(eq.SumFy) <= tol && math.Abs(eq.SumMz) <= tol
	return eq
}
