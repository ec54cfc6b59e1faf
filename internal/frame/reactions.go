package frame

import (
	"gonum.org/v1/gonum/mat"
)

// expand scatters the free displacements into a full-length vector with
// zeros at every restrained DOF
func expand(n int, p partition, uf *mat.VecDense) *mat.VecDense {
	u := mat.NewVecDense(n, nil)
	for a, dof := range p.Free {
		u.SetVec(dof, uf.AtVec(a))
	}
	return u
}

// recoverReactions computes the out-of-balance vector R = F - K·U and reports,
// for each support, the negated residual at the DOF it restrains. The result
// is the force the support exerts on the structure, K·U - F. Reporting
// -(K·U - F) would give the force on the support instead, and those values
// do not balance the applied loads.
func recoverReactions(s Structure, index map[string]int, sys globalSystem, u *mat.VecDense) []Reaction {
	var ku mat.VecDense
	ku.MulVec(sys.K, u)

	var residual mat.VecDense
	residual.SubVec(sys.F, &ku)

	reactions := make([]Reaction, 0, len(s.Supports))
	for _, sp := range s.Supports {
		base := index[sp.NodeID] * DOFPerNode
		var comp [DOFPerNode]float64
		for _, off := range sp.Type.RestrainedOffsets() {
			// 0 - r keeps an exact zero positive
			comp[off] = 0 - residual.AtVec(base+off)
		}
		reactions = append(reactions, Reaction{
			ID:     sp.ID,
			NodeID: sp.NodeID,
			Fx:     comp[DOFX],
			Fy:     comp[DOFY],
			Mz:     comp[DOFRZ],
		})
	}
	return reactions
}
