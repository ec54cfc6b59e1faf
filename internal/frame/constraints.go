package frame

import (
	"gonum.org/v1/gonum/mat"
)

// partition splits the global DOF range into free and restrained indices
type partition struct {
	Free       []int // ascending
	Restrained []int // ascending
}

// restrainedDOF collects the global DOF held by the supports
func restrainedDOF(s Structure, index map[string]int) map[int]bool {
	held := make(map[int]bool, len(s.Supports)*DOFPerNode)
	for _, sp := range s.Supports {
		base := index[sp.NodeID] * DOFPerNode
		for _, off := range sp.Type.RestrainedOffsets() {
			held[base+off] = true
		}
	}
	return held
}

// partitionDOF returns the ordered free and restrained DOF lists
func partitionDOF(n int, held map[int]bool) partition {
	var p partition
	for dof := 0; dof < n; dof++ {
		if held[dof] {
			p.Restrained = append(p.Restrained, dof)
		} else {
			p.Free = append(p.Free, dof)
		}
	}
	return p
}

// reduce extracts K_ff and F_f for the free DOF. It fails with
// FullyConstrainedError when nothing is left to solve for.
func reduce(sys globalSystem, p partition) (*mat.Dense, *mat.VecDense, error) {
	nf := len(p.Free)
	if nf == 0 {
		return nil, nil, &FullyConstrainedError{DOF: len(p.Restrained)}
	}

	kff := mat.NewDense(nf, nf, nil)
	ff := mat.NewVecDense(nf, nil)
	for a, r := range p.Free {
		ff.SetVec(a, sys.F.AtVec(r))
		for b, c := range p.Free {
			kff.Set(a, b, sys.K.At(r, c))
		}
	}
	return kff, ff, nil
}
