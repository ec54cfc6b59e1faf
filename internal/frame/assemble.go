package frame

import (
	"gonum.org/v1/gonum/mat"
)

// globalSystem is the assembled stiffness matrix and load vector
type globalSystem struct {
	K       *mat.Dense
	F       *mat.VecDense
	Skipped []DegenerateMemberSkipped
}

// assemble builds K (3N x 3N) and F (3N). Contributions are added, so members
// sharing a node accumulate into the same block. Structures must be validated
// and have at least one node.
func assemble(s Structure, index map[string]int) globalSystem {
	n := s.DOFCount()
	sys := globalSystem{
		K: mat.NewDense(n, n, nil),
		F: mat.NewVecDense(n, nil),
	}

	for _, m := range s.Members {
		i := index[m.StartNodeID]
		j := index[m.EndNodeID]

		if i == j {
			sys.Skipped = append(sys.Skipped, DegenerateMemberSkipped{MemberID: m.ID, Reason: "start and end node are the same"})
			continue
		}
		g := geometry(s.Nodes[i], s.Nodes[j])
		if g.L == 0 {
			sys.Skipped = append(sys.Skipped, DegenerateMemberSkipped{MemberID: m.ID, Reason: "zero length"})
			continue
		}

		kg := GlobalStiffness(g.L, g.C, g.S)
		dofs := memberDOF(i, j)
		for row := 0; row < 6; row++ {
			for col := 0; col < 6; col++ {
				r, c := dofs[row], dofs[col]
				sys.K.Set(r, c, sys.K.At(r, c)+kg.At(row, col))
			}
		}
	}

	for _, pl := range s.PointLoads {
		base := index[pl.NodeID] * DOFPerNode
		sys.F.SetVec(base+DOFX, sys.F.AtVec(base+DOFX)+pl.Fx)
		sys.F.SetVec(base+DOFY, sys.F.AtVec(base+DOFY)+pl.Fy)
	}
	for _, ml := range s.MomentLoads {
		k := index[ml.NodeID]*DOFPerNode + DOFRZ
		sys.F.SetVec(k, sys.F.AtVec(k)+ml.Mz)
	}

	return sys
}

// memberDOF lists the global DOF indices of a member's two end nodes
func memberDOF(i, j int) [6]int {
	a, b := i*DOFPerNode, j*DOFPerNode
	return [6]int{a, a + 1, a + 2, b, b + 1, b + 2}
}
