package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag variables outlive a single execution
	frameSolveShowDiagram, frameSolveJSON = false, false
	frameSolveExportFile, frameSolveReportFile = "", ""
	frameCombosSimplified, frameCombosAll, frameCombosReport = false, false, ""
	frameInitForce = false

	// A nil slice would make cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTemplate(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, structfile.SaveToFile(path, structfile.Template()))
	return path
}

func TestRootAndVersion(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Go Planar Frame Solver")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "goframe v")
}

func TestFrameInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.yaml")
	out, err := run(t, "frame", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, "frame", "init", "-o", path)
	assert.Error(t, err)

	_, err = run(t, "frame", "init", "-o", path, "--force")
	assert.NoError(t, err)
}

func TestFrameSolve(t *testing.T) {
	path := writeTemplate(t, "cantilever.json")
	dir := t.TempDir()
	img := filepath.Join(dir, "frame.svg")
	pdf := filepath.Join(dir, "report.pdf")

	out, err := run(t, "frame", "solve", "-f", path, "--diagram", "-o", img, "--report", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "SUPPORT REACTIONS")
	assert.Contains(t, out, "40.0000")
	assert.Contains(t, out, "Equilibrium satisfied")
	assert.Contains(t, out, "#")
	assert.FileExists(t, img)
	assert.FileExists(t, pdf)
}

func TestFrameSolve_JSON(t *testing.T) {
	path := writeTemplate(t, "cantilever.yaml")
	out, err := run(t, "frame", "solve", "-f", path, "--json")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results.Reactions, 1)
	assert.InDelta(t, 10, got.Results.Reactions[0].Fy, 1e-6)
	assert.True(t, got.Equilibrium.OK)
}

func TestFrameSolve_Unstable(t *testing.T) {
	s := structfile.Template()
	s.Supports[0].Type = frame.Roller
	path := filepath.Join(t.TempDir(), "unstable.json")
	require.NoError(t, structfile.SaveToFile(path, s))

	_, err := run(t, "frame", "solve", "-f", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrSingularMatrix)

	out, err := run(t, "frame", "check", "-f", path)
	assert.Error(t, err)
	assert.Contains(t, out, "mechanism")
}

func TestFrameCheck(t *testing.T) {
	path := writeTemplate(t, "cantilever.json")
	out, err := run(t, "frame", "check", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid structure file")
	assert.Contains(t, out, "Structure is stable")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nodes": [{"id": "A"}, {"id": "A"}]}`), 0644))
	_, err = run(t, "frame", "check", "-f", bad)
	assert.Error(t, err)
}

func TestFrameCombos(t *testing.T) {
	path := writeTemplate(t, "cantilever.json")
	out, err := run(t, "frame", "combos", "-f", path, "--simplified", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "REACTION ENVELOPE")
	assert.Contains(t, out, "COMBINATION (1)")
	// 1.4D on a 10 kN dead load
	assert.Contains(t, out, "14.0000")
}

func TestFrameConvert(t *testing.T) {
	src := writeTemplate(t, "cantilever.json")
	dst := filepath.Join(t.TempDir(), "cantilever.xlsx")

	_, err := run(t, "frame", "convert", "-f", src, "--to", dst)
	require.NoError(t, err)

	want, err := structfile.LoadFromFile(src)
	require.NoError(t, err)
	got, err := structfile.LoadFromFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
