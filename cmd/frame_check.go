package cmd

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/spf13/cobra"
)

var frameCheckFile string

var frameCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a structure file",
	Long: `Validate a structure file and check that the frame is stable.

Reports the size of the model, zero-length members that the solver
would skip, and whether the stiffness system can be solved.

Examples:
  goframe frame check --file portal.json`,
	RunE: runFrameCheck,
}

func init() {
	frameCmd.AddCommand(frameCheckCmd)

	frameCheckCmd.Flags().StringVarP(&frameCheckFile, "file", "f", "", "Path to structure file [required]")
	frameCheckCmd.MarkFlagRequired("file")
}

func runFrameCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := structfile.LoadFromFile(frameCheckFile)
	if err != nil {
		fmt.Fprintf(out, "  ✗ %v\n", err)
		return errors.New("structure file is invalid")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ✓ %s is a valid structure file\n", frameCheckFile)
	fmt.Fprintln(out)
	printStructureSummary(out, s)

	res, err := frame.NewSolver(nil).Solve(s)
	for _, sk := range resultsSkipped(res) {
		fmt.Fprintf(out, "  ⚠ member %s will be skipped: %s\n", sk.MemberID, sk.Reason)
	}

	if err == nil {
		fmt.Fprintln(out, "  ✓ Structure is stable")
		fmt.Fprintln(out)
		return nil
	}

	fmt.Fprintf(out, "  ✗ %v\n", err)
	switch {
	case errors.Is(err, frame.ErrFullyConstrained):
		fmt.Fprintln(out, "    Every degree of freedom is held by a support; remove a restraint or add nodes.")
	case errors.Is(err, frame.ErrSingularMatrix):
		fmt.Fprintln(out, "    The frame is a mechanism; add supports or members to stabilize it.")
	}
	fmt.Fprintln(out)
	return errors.New("structure cannot be solved")
}

func resultsSkipped(res *frame.AnalysisResults) []frame.DegenerateMemberSkipped {
	if res == nil {
		return nil
	}
	return res.SkippedMembers
}
