package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/report"
	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/spf13/cobra"
)

var (
	frameSolveFile        string
	frameSolveShowDiagram bool
	frameSolveExportFile  string
	frameSolveReportFile  string
	frameSolveJSON        bool
)

var frameSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the support reactions of a frame",
	Long: `Compute the support reactions of a planar frame by the
direct stiffness method and check global equilibrium.

Members of zero length are skipped with a warning.

Examples:
  goframe frame solve --file portal.json
  goframe frame solve -f portal.yaml --diagram
  goframe frame solve -f portal.xlsx -o portal.png --report portal.pdf
  goframe frame solve -f portal.json --json`,
	RunE: runFrameSolve,
}

func init() {
	frameCmd.AddCommand(frameSolveCmd)

	frameSolveCmd.Flags().StringVarP(&frameSolveFile, "file", "f", "", "Path to structure file [required]")
	frameSolveCmd.MarkFlagRequired("file")

	// Output options
	frameSolveCmd.Flags().BoolVar(&frameSolveShowDiagram, "diagram", false, "Show ASCII sketch of the frame")
	frameSolveCmd.Flags().StringVarP(&frameSolveExportFile, "output", "o", "", "Export diagram to file (png, svg, pdf)")
	frameSolveCmd.Flags().StringVar(&frameSolveReportFile, "report", "", "Write a PDF calculation report")
	frameSolveCmd.Flags().BoolVar(&frameSolveJSON, "json", false, "Print results as JSON")
}

type solveOutput struct {
	Results     *frame.AnalysisResults `json:"results"`
	Equilibrium frame.Equilibrium      `json:"equilibrium"`
}

func runFrameSolve(cmd *cobra.Command, args []string) error {
	s, err := structfile.LoadFromFile(frameSolveFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}

	logger := newLogger()
	defer logger.Sync()

	res, err := frame.NewSolver(logger).Solve(s)
	if err != nil {
		return fmt.Errorf("solving structure: %w", err)
	}
	eq := frame.CheckEquilibrium(s, res)
	out := cmd.OutOrStdout()

	if frameSolveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(solveOutput{Results: res, Equilibrium: eq}); err != nil {
			return err
		}
	} else {
		printSolve(out, s, res, eq)
	}

	if frameSolveExportFile != "" {
		path, err := diagram.ExportFrameDiagram(diagram.FrameDiagramData{
			Title:     "Frame - " + frameSolveFile,
			Structure: s,
			Results:   res,
		}, frameSolveExportFile)
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  Diagram exported to: %s\n", path)
	}

	if frameSolveReportFile != "" {
		if err := writeReportFile(frameSolveReportFile, report.Data{
			Input:     report.Input{Project: frameSolveFile},
			Structure: s,
			Results:   res,
			Diagram:   true,
		}); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  Report written to: %s\n", frameSolveReportFile)
	}
	return nil
}

func printSolve(out io.Writer, s frame.Structure, res *frame.AnalysisResults, eq frame.Equilibrium) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     PLANAR FRAME ANALYSIS - DIRECT STIFFNESS METHOD")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	printStructureSummary(out, s)

	if frameSolveShowDiagram {
		fmt.Fprintln(out, "FRAME:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		fmt.Fprint(out, diagram.DrawASCIIFrame(s, 60, 16))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "SUPPORT REACTIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Support\tNode\tType\tFx (kN)\tFy (kN)\tMz (kN-m)\n")
	fmt.Fprintf(w, "  ───────\t────\t────\t───────\t───────\t─────────\n")
	for i, rx := range res.Reactions {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.4f\t%.4f\t%.4f\n",
			rx.ID, rx.NodeID, s.Supports[i].Type, rx.Fx, rx.Fy, rx.Mz)
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(res.SkippedMembers) > 0 {
		fmt.Fprintln(out, "SKIPPED MEMBERS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		for _, sk := range res.SkippedMembers {
			fmt.Fprintf(out, "  ⚠ %s: %s\n", sk.MemberID, sk.Reason)
		}
		fmt.Fprintln(out)
	}

	status := "Equilibrium satisfied"
	if !eq.OK {
		status = "Equilibrium NOT satisfied"
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("EQUILIBRIUM CHECK", []string{
		fmt.Sprintf("Sum Fx = %.3e kN", eq.SumFx),
		fmt.Sprintf("Sum Fy = %.3e kN", eq.SumFy),
		fmt.Sprintf("Sum Mz = %.3e kN-m (about origin)", eq.SumMz),
		status,
	}))
	fmt.Fprintln(out)
}

func printStructureSummary(out io.Writer, s frame.Structure) {
	fmt.Fprintln(out, "STRUCTURE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(s.Nodes))
	fmt.Fprintf(w, "  Members:\t%d\n", len(s.Members))
	fmt.Fprintf(w, "  Supports:\t%d\n", len(s.Supports))
	fmt.Fprintf(w, "  Point loads:\t%d\n", len(s.PointLoads))
	fmt.Fprintf(w, "  Moment loads:\t%d\n", len(s.MomentLoads))
	fmt.Fprintf(w, "  Degrees of freedom:\t%d (%d restrained)\n", s.DOFCount(), restrainedCount(s))
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MATERIAL AND SECTION:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  E:\t%.4g kPa\n", frame.ElasticModulus)
	fmt.Fprintf(w, "  A:\t%.4g m²\n", frame.SectionArea)
	fmt.Fprintf(w, "  I:\t%.4g m⁴\n", frame.SecondMoment)
	w.Flush()
	fmt.Fprintln(out)
}

func writeReportFile(path string, data report.Data) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
