package frame

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultConditionLimit is the largest condition number estimate of K_ff
// accepted as a stable structure.
const DefaultConditionLimit = 1e12

// solveLinear solves kff·u = ff by LU factorization with partial pivoting.
// An exactly singular factorization, a condition estimate above limit or a
// non-finite solution is reported as SingularMatrixError.
func solveLinear(kff *mat.Dense, ff *mat.VecDense, limit float64) (*mat.VecDense, error) {
	n, _ := kff.Dims()

	var lu mat.LU
	lu.Factorize(kff)

	cond := lu.Cond()
	if math.IsNaN(cond) || math.IsInf(cond, 0) || cond > limit {
		return nil, &SingularMatrixError{FreeDOF: n, Condition: cond}
	}

	var u mat.VecDense
	if err := lu.SolveVecTo(&u, false, ff); err != nil {
		return nil, &SingularMatrixError{FreeDOF: n, Condition: cond}
	}
	for i := 0; i < n; i++ {
		if v := u.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SingularMatrixError{FreeDOF: n, Condition: cond}
		}
	}
	return &u, nil
}
