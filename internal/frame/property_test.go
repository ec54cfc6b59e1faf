package frame

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// permutations of four elements, used to reorder portal frame nodes
var permutations4 = func() [][]int {
	var out [][]int
	var walk func(prefix []int, rest []int)
	walk = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := range rest {
			next := append(append([]int(nil), rest[:i]...), rest[i+1:]...)
			walk(append(prefix, rest[i]), next)
		}
	}
	walk(nil, []int{0, 1, 2, 3})
	return out
}()

func loadedPortal(fx, fy, mz float64, leftSupport SupportType) Structure {
	s := portal()
	s.PointLoads = []PointLoad{
		{ID: "P1", NodeID: "B", Fx: fx, Fy: fy},
		{ID: "P2", NodeID: "C", Fx: fy / 2, Fy: -fx},
	}
	s.MomentLoads = []MomentLoad{{ID: "M1", NodeID: "B", Mz: mz}}
	s.Supports[0].Type = leftSupport
	return s
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestSolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	loads := gen.Float64Range(-500, 500)
	supports := gen.OneConstOf(Pin, Fixed)

	properties.Property("reactions balance the applied loads", prop.ForAll(
		func(fx, fy, mz float64, left SupportType) bool {
			s := loadedPortal(fx, fy, mz, left)
			res, err := Solve(s)
			if err != nil {
				return false
			}
			return CheckEquilibrium(s, res).OK
		},
		loads, loads, loads, supports,
	))

	properties.Property("solving twice gives identical results", prop.ForAll(
		func(fx, fy, mz float64) bool {
			s := loadedPortal(fx, fy, mz, Fixed)
			first, err1 := Solve(s)
			second, err2 := Solve(s)
			if err1 != nil || err2 != nil {
				return false
			}
			for i := range first.Reactions {
				if first.Reactions[i] != second.Reactions[i] {
					return false
				}
			}
			return true
		},
		loads, loads, loads,
	))

	properties.Property("node order does not change reactions", prop.ForAll(
		func(fx, fy, mz float64, perm int) bool {
			s := loadedPortal(fx, fy, mz, Pin)
			want, err := Solve(s)
			if err != nil {
				return false
			}

			reordered := s.Clone()
			for i, j := range permutations4[perm] {
				reordered.Nodes[i] = s.Nodes[j]
			}
			got, err := Solve(reordered)
			if err != nil {
				return false
			}

			for i := range want.Reactions {
				w, g := want.Reactions[i], got.Reactions[i]
				if w.ID != g.ID || !approxEqual(w.Fx, g.Fx) || !approxEqual(w.Fy, g.Fy) || !approxEqual(w.Mz, g.Mz) {
					return false
				}
			}
			return true
		},
		loads, loads, loads, gen.IntRange(0, len(permutations4)-1),
	))

	properties.TestingRun(t)
}
