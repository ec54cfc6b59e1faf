package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cantilever() frame.Structure {
	return frame.Structure{
		Nodes:      []frame.Node{{ID: "A", X: 0, Y: 0}, {ID: "B", X: 4, Y: 0}},
		Members:    []frame.Member{{ID: "M1", StartNodeID: "A", EndNodeID: "B"}},
		Supports:   []frame.Support{{ID: "S1", NodeID: "A", Type: frame.Fixed}},
		PointLoads: []frame.PointLoad{{ID: "P1", NodeID: "B", Fy: -10}},
	}
}

func portal() frame.Structure {
	return frame.Structure{
		Nodes: []frame.Node{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 0, Y: 3},
			{ID: "C", X: 4, Y: 3},
			{ID: "D", X: 4, Y: 0},
		},
		Members: []frame.Member{
			{ID: "M1", StartNodeID: "A", EndNodeID: "B"},
			{ID: "M2", StartNodeID: "B", EndNodeID: "C"},
			{ID: "M3", StartNodeID: "D", EndNodeID: "C"},
		},
		Supports: []frame.Support{
			{ID: "SA", NodeID: "A", Type: frame.Fixed},
			{ID: "SD", NodeID: "D", Type: frame.Pin},
		},
		MomentLoads: []frame.MomentLoad{{ID: "Q", NodeID: "C", Mz: 5}},
	}
}

func TestDrawASCIIFrame_Cantilever(t *testing.T) {
	out := DrawASCIIFrame(cantilever(), 21, 5)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "  #-------------------o", lines[0])
	assert.Contains(t, out, "# fixed")
}

func TestDrawASCIIFrame_Portal(t *testing.T) {
	out := DrawASCIIFrame(portal(), 9, 4)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{
		"  o-------o",
		"  |       |",
		"  |       |",
		"  #       ^",
	}, lines[:4])
}

func TestDrawASCIIFrame_Diagonal(t *testing.T) {
	s := frame.Structure{
		Nodes:   []frame.Node{{ID: "A", X: 0, Y: 0}, {ID: "B", X: 2, Y: 2}},
		Members: []frame.Member{{ID: "M", StartNodeID: "A", EndNodeID: "B"}},
	}
	lines := strings.Split(DrawASCIIFrame(s, 3, 3), "\n")
	assert.Equal(t, []string{"    o", "   /", "  o"}, lines[:3])
}

func TestDrawASCIIFrame_Empty(t *testing.T) {
	assert.Contains(t, DrawASCIIFrame(frame.Structure{}, 10, 10), "empty")
}

func TestDrawReactionTable(t *testing.T) {
	res := &frame.AnalysisResults{Reactions: []frame.Reaction{{ID: "S1", NodeID: "A", Fy: 10, Mz: 40}}}
	out := DrawReactionTable(res)
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "10.0000")
	assert.Contains(t, out, "40.0000")
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("Equilibrium", []string{"sum Fx = 0", "OK"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportFrameDiagram(t *testing.T) {
	s := portal()
	res, err := frame.Solve(s)
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"frame.png", "frame.svg", "sub/frame.pdf"} {
		path, err := ExportFrameDiagram(FrameDiagramData{Title: "Portal", Structure: s, Results: res}, filepath.Join(dir, name))
		require.NoError(t, err, name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	path, err := ExportFrameDiagram(FrameDiagramData{Structure: cantilever()}, filepath.Join(dir, "plain"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plain.png"), path)
}

func TestFramePlot(t *testing.T) {
	_, err := FramePlot(FrameDiagramData{})
	assert.Error(t, err)

	p, err := FramePlot(FrameDiagramData{Structure: cantilever()})
	require.NoError(t, err)
	assert.Equal(t, "Frame", p.Title.Text)
	assert.Less(t, p.X.Min, 0.0)
	assert.Greater(t, p.X.Max, 4.0)
}
