package nscp

import (
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taggedBeam() frame.Structure {
	return frame.Structure{
		Nodes: []frame.Node{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 3, Y: 0},
			{ID: "C", X: 6, Y: 0},
		},
		Members: []frame.Member{
			{ID: "M1", StartNodeID: "A", EndNodeID: "B"},
			{ID: "M2", StartNodeID: "B", EndNodeID: "C"},
		},
		Supports: []frame.Support{
			{ID: "SA", NodeID: "A", Type: frame.Pin},
			{ID: "SC", NodeID: "C", Type: frame.Roller},
		},
		PointLoads: []frame.PointLoad{
			{ID: "dead", NodeID: "B", Fy: -10},
			{ID: "wind", NodeID: "C", Fx: 0, Fy: 4, Case: "W"},
		},
		MomentLoads: []frame.MomentLoad{
			{ID: "live", NodeID: "B", Mz: 3, Case: "L"},
		},
	}
}

func TestParseLoadCase(t *testing.T) {
	for tag, want := range map[string]LoadCase{
		"":     Dead,
		"d":    Dead,
		"L":    Live,
		"lr":   Roof,
		"Wind": Wind,
		" E ":  Earthquake,
		"rain": Rain,
	} {
		got, err := ParseLoadCase(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := ParseLoadCase("snow")
	assert.ErrorIs(t, err, ErrUnknownLoadCase)
}

func TestLoadCombination_Factor(t *testing.T) {
	lc, ok := Combination(LoadCombinations, "4b")
	require.True(t, ok)
	assert.Equal(t, 1.2, lc.Factor(Dead))
	assert.Equal(t, 1.0, lc.Factor(Wind))
	assert.Equal(t, 0.5, lc.Factor(Rain))
	assert.Equal(t, 0.0, lc.Factor(Roof))
	assert.Equal(t, 0.0, lc.Factor(Earthquake))
	assert.Equal(t, 0.0, lc.Factor(LoadCase("X")))

	_, ok = Combination(LoadCombinations, "3")
	assert.False(t, ok)
}

func TestLoadCombinations_AlternativesAreSeparate(t *testing.T) {
	ids := make(map[string]bool)
	for _, lc := range LoadCombinations {
		assert.False(t, ids[lc.ID], "duplicate id %s", lc.ID)
		ids[lc.ID] = true

		// "Lr or R" and "L or 0.5W" never both apply
		assert.False(t, lc.Roof != 0 && lc.Rain != 0, lc.ID)
		if lc.Roof == 1.6 || lc.Rain == 1.6 {
			assert.False(t, lc.Live != 0 && lc.Wind != 0, lc.ID)
		}
	}
	assert.Len(t, LoadCombinations, 12)
}

func TestFactored_OneAlternativePerCombination(t *testing.T) {
	s := frame.Structure{
		Nodes:       []frame.Node{{ID: "A"}, {ID: "B", X: 4}},
		Members:     []frame.Member{{ID: "M1", StartNodeID: "A", EndNodeID: "B"}},
		Supports:    []frame.Support{{ID: "S1", NodeID: "A", Type: frame.Fixed}},
		PointLoads:  []frame.PointLoad{{ID: "live", NodeID: "B", Fy: -10, Case: "L"}},
		MomentLoads: []frame.MomentLoad{{ID: "wind", NodeID: "B", Mz: -10, Case: "W"}},
	}

	for id, want := range map[string][2]float64{
		"3a": {-10, 0},
		"3b": {0, -5},
		"3c": {-10, 0},
		"3d": {0, -5},
	} {
		lc, ok := Combination(LoadCombinations, id)
		require.True(t, ok, id)
		out, err := Factored(s, lc)
		require.NoError(t, err, id)
		assert.InDelta(t, want[0], out.PointLoads[0].Fy, 1e-12, id)
		assert.InDelta(t, want[1], out.MomentLoads[0].Mz, 1e-12, id)
	}
}

func TestFactored(t *testing.T) {
	s := taggedBeam()
	out, err := Factored(s, SimplifiedCombinations[1])
	require.NoError(t, err)

	assert.InDelta(t, -12, out.PointLoads[0].Fy, 1e-12)
	assert.Equal(t, 0.0, out.PointLoads[1].Fy)
	assert.InDelta(t, 4.8, out.MomentLoads[0].Mz, 1e-12)

	// Input structure is untouched
	assert.Equal(t, -10.0, s.PointLoads[0].Fy)

	s.PointLoads[0].Case = "snow"
	_, err = Factored(s, LoadCombinations[0])
	assert.Error(t, err)
}

func TestAnalyze_Envelope(t *testing.T) {
	s := taggedBeam()
	got, err := Analyze(frame.NewSolver(nil), s, LoadCombinations)
	require.NoError(t, err)
	require.Len(t, got.Combinations, len(LoadCombinations))
	require.Len(t, got.Envelopes, 2)

	for _, cr := range got.Combinations {
		factored, err := Factored(s, cr.Combination)
		require.NoError(t, err)
		assert.True(t, frame.CheckEquilibrium(factored, cr.Results).OK, cr.Combination.ID)
	}

	// 1.4D gives the largest upward reaction at A: 1.4 * 10 / 2
	envA := got.Envelopes[0]
	assert.Equal(t, "SA", envA.SupportID)
	assert.InDelta(t, 7, envA.MaxFy.Value, 1e-6)
	assert.Equal(t, "1", envA.MaxFy.Combination)
	assert.LessOrEqual(t, envA.MinFy.Value, envA.MaxFy.Value)
	assert.InDelta(t, 0, envA.MaxFx.Value, 1e-6)
}

func TestAnalyze_PropagatesSolverErrors(t *testing.T) {
	s := taggedBeam()
	s.Supports = s.Supports[:1]

	_, err := Analyze(frame.NewSolver(nil), s, SimplifiedCombinations)
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrSingularMatrix)
	assert.Contains(t, err.Error(), "combination 1")
}

func TestAnalyze_NoCombinations(t *testing.T) {
	got, err := Analyze(frame.NewSolver(nil), taggedBeam(), nil)
	require.NoError(t, err)
	assert.Empty(t, got.Combinations)
	require.Len(t, got.Envelopes, 2)
	assert.Equal(t, Extreme{}, got.Envelopes[0].MaxFy)
}
