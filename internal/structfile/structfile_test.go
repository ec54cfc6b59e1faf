package structfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

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
		PointLoads: []frame.PointLoad{
			{ID: "P1", NodeID: "B", Fx: 10, Case: "W"},
			{ID: "P2", NodeID: "C", Fy: -20.5},
		},
		MomentLoads: []frame.MomentLoad{
			{ID: "Q1", NodeID: "C", Mz: 5, Case: "L"},
		},
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json":     JSON,
		"dir/b.YAML": YAML,
		"c.yml":      YAML,
		"d.xlsx":     XLSX,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("frame.txt")
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	want := portal()

	for _, name := range []string{"portal.json", "portal.yaml", "nested/portal.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveToFile(path, want))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "A", "x": 0, "y": 0}, {"id": "B", "x": 4, "y": 0}],
		"members": [{"id": "M1", "startNodeId": "A", "endNodeId": "B"}],
		"supports": [{"id": "S1", "nodeId": "A", "type": "fixed"}],
		"pointLoads": [{"id": "P1", "nodeId": "B", "fx": 0, "fy": -10}]
	}`)

	s, err := Parse(data, JSON)
	require.NoError(t, err)
	assert.Len(t, s.Nodes, 2)
	assert.Equal(t, frame.Fixed, s.Supports[0].Type)

	res, err := frame.Solve(s)
	require.NoError(t, err)
	assert.InDelta(t, 40, res.Reactions[0].Mz, 1e-6)
}

func TestParse_NumberedPerKind(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "1", "x": 0, "y": 0}, {"id": "2", "x": 4, "y": 0}],
		"members": [{"id": "1", "startNodeId": "1", "endNodeId": "2"}],
		"supports": [{"id": "1", "nodeId": "1", "type": "fixed"}],
		"pointLoads": [{"id": "1", "nodeId": "2", "fy": -10}],
		"momentLoads": [{"id": "1", "nodeId": "2", "mz": 0}]
	}`)

	s, err := Parse(data, JSON)
	require.NoError(t, err)
	assert.Len(t, s.Nodes, 2)
	assert.Len(t, s.Members, 1)
	assert.Len(t, s.Supports, 1)
	assert.Len(t, s.PointLoads, 1)
	assert.Len(t, s.MomentLoads, 1)

	res, err := frame.Solve(s)
	require.NoError(t, err)
	rx, ok := res.Reaction("1")
	require.True(t, ok)
	assert.InDelta(t, 10, rx.Fy, 1e-6)
}

func TestParse_YAMLSupportAliases(t *testing.T) {
	data := []byte(`
nodes:
  - {id: A, x: 0, y: 0}
  - {id: B, x: 6, y: 0}
members:
  - {id: M1, startNodeId: A, endNodeId: B}
supports:
  - {id: S1, nodeId: A, type: hinge}
  - {id: S2, nodeId: B, type: Roller}
`)
	s, err := Parse(data, YAML)
	require.NoError(t, err)
	assert.Equal(t, frame.Pin, s.Supports[0].Type)
	assert.Equal(t, frame.Roller, s.Supports[1].Type)
}

func TestParse_CollapsesRepeatedSupports(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "A"}, {"id": "B", "x": 4}],
		"members": [{"id": "M1", "startNodeId": "A", "endNodeId": "B"}],
		"supports": [
			{"id": "S1", "nodeId": "A", "type": "fixed"},
			{"id": "S2", "nodeId": "A", "type": "pin"}
		]
	}`)
	s, err := Parse(data, JSON)
	require.NoError(t, err)
	require.Len(t, s.Supports, 1)
	assert.Equal(t, "S1", s.Supports[0].ID)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"nodes": [`},
		{"bad support type", `{"nodes": [{"id": "A"}], "supports": [{"id": "S", "nodeId": "A", "type": "slider"}]}`},
		{"unknown node", `{"nodes": [{"id": "A"}], "members": [{"id": "M", "startNodeId": "A", "endNodeId": "Z"}]}`},
		{"duplicate node id", `{"nodes": [{"id": "A"}, {"id": "A"}]}`},
		{"duplicate member id", `{"nodes": [{"id": "A"}, {"id": "B", "x": 1}], "members": [
			{"id": "M", "startNodeId": "A", "endNodeId": "B"},
			{"id": "M", "startNodeId": "B", "endNodeId": "A"}]}`},
		{"infinite coordinate", `{"nodes": [{"id": "A", "x": 1e400}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), JSON)
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("{}"), Format("toml"))
	assert.Error(t, err)
}

func TestReadWorkbook_MissingSheetsAndBlankRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetNodes))
	require.NoError(t, f.SetSheetRow(SheetNodes, "A1", &[]interface{}{"id", "x", "y"}))
	require.NoError(t, f.SetSheetRow(SheetNodes, "A2", &[]interface{}{"A", 0, 0}))
	require.NoError(t, f.SetSheetRow(SheetNodes, "A4", &[]interface{}{" B ", "2.5", 1}))

	path := filepath.Join(t.TempDir(), "nodes.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, s.Nodes, 2)
	assert.Equal(t, "B", s.Nodes[1].ID)
	assert.Equal(t, 2.5, s.Nodes[1].X)
	assert.Empty(t, s.Members)
}

func TestReadWorkbook_BadNumber(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetNodes))
	require.NoError(t, f.SetSheetRow(SheetNodes, "A2", &[]interface{}{"A", "abc", 0}))

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTemplate_Solves(t *testing.T) {
	tpl, err := Normalize(Template())
	require.NoError(t, err)

	res, err := frame.Solve(tpl)
	require.NoError(t, err)
	assert.InDelta(t, 10, res.Reactions[0].Fy, 1e-6)
}
