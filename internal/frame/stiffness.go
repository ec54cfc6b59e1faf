package frame

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LocalStiffness builds the 6x6 Euler-Bernoulli frame element stiffness in
// local DOF order [axial-1, shear-1, rotation-1, axial-2, shear-2, rotation-2].
// L must be positive; the assembler never calls it for degenerate members.
func LocalStiffness(e, a, i, l float64) *mat.Dense {
	eaL := e * a / l
	eiL := e * i / l
	eiL2 := e * i / (l * l)
	eiL3 := e * i / (l * l * l)

	return mat.NewDense(6, 6, []float64{
		eaL, 0, 0, -eaL, 0, 0,
		0, 12 * eiL3, 6 * eiL2, 0, -12 * eiL3, 6 * eiL2,
		0, 6 * eiL2, 4 * eiL, 0, -6 * eiL2, 2 * eiL,
		-eaL, 0, 0, eaL, 0, 0,
		0, -12 * eiL3, -6 * eiL2, 0, 12 * eiL3, -6 * eiL2,
		0, 6 * eiL2, 2 * eiL, 0, -6 * eiL2, 4 * eiL,
	})
}

// Transformation builds the 6x6 global-to-local rotation matrix of a member
// with direction cosine c and sine s. The rotational DOF is left unchanged.
func Transformation(c, s float64) *mat.Dense {
	return mat.NewDense(6, 6, []float64{
		c, s, 0, 0, 0, 0,
		-s, c, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0,
		0, 0, 0, c, s, 0,
		0, 0, 0, -s, c, 0,
		0, 0, 0, 0, 0, 1,
	})
}

// memberGeometry holds the length and direction of a member axis
type memberGeometry struct {
	L float64 // length (m)
	C float64 // cos θ
	S float64 // sin θ
}

func geometry(start, end Node) memberGeometry {
	dx := end.X - start.X
	dy := end.Y - start.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return memberGeometry{}
	}
	return memberGeometry{L: l, C: dx / l, S: dy / l}
}

// GlobalStiffness returns Tᵀ·k·T for a member of the given geometry using
// the model-wide material and section constants.
func GlobalStiffness(l, c, s float64) *mat.Dense {
	kl := LocalStiffness(ElasticModulus, SectionArea, SecondMoment, l)
	t := Transformation(c, s)

	var kg mat.Dense
	kg.Product(t.T(), kl, t)
	return &kg
}
