package cmd

import (
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Planar frame analysis",
	Long: `Analyze planar frames defined in structure files.

A structure file lists nodes, members, supports and nodal loads.
JSON (.json), YAML (.yaml, .yml) and Excel (.xlsx) files are supported.
Excel workbooks use the sheets Nodes, Members, Supports, PointLoads and
MomentLoads, each with a header row.

Subcommands:
  solve    - Compute support reactions
  check    - Validate a structure file and report its size
  combos   - Solve every NSCP load combination and print the envelope
  convert  - Convert a structure file to another format
  init     - Write a sample structure file

Units are kN and m. Moments are counter-clockwise positive.
Loads may carry a load case tag (D, L, Lr, W, E, R); untagged loads are dead loads.

Example JSON file structure:
{
  "nodes": [
    {"id": "A", "x": 0, "y": 0},
    {"id": "B", "x": 4, "y": 0}
  ],
  "members": [
    {"id": "M1", "startNodeId": "A", "endNodeId": "B"}
  ],
  "supports": [
    {"id": "S1", "nodeId": "A", "type": "fixed"}
  ],
  "pointLoads": [
    {"id": "P1", "nodeId": "B", "fx": 0, "fy": -10, "case": "D"}
  ],
  "momentLoads": []
}`,
}

func init() {
	rootCmd.AddCommand(frameCmd)
}

// restrainedCount returns the number of DOF held by the supports of s
func restrainedCount(s frame.Structure) int {
	n := 0
	for _, sp := range s.Supports {
		n += len(sp.Type.RestrainedOffsets())
	}
	return n
}
