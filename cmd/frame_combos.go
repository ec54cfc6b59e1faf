package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/report"
	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/spf13/cobra"
)

var (
	frameCombosFile       string
	frameCombosSimplified bool
	frameCombosAll        bool
	frameCombosReport     string
)

var frameCombosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Analyze a frame under NSCP 2015 load combinations",
	Long: `Solve a frame once per NSCP 2015 load combination and print the
envelope of support reactions with the governing combination.
Equations with "or" alternatives run once per alternative (2a/2b, 3a-3d, 4a/4b).

Loads are grouped by their case tag:
  D  - Dead load (default for untagged loads)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  goframe frame combos --file portal.json
  goframe frame combos -f portal.json --simplified
  goframe frame combos -f portal.json --all --report combos.pdf`,
	RunE: runFrameCombos,
}

func init() {
	frameCmd.AddCommand(frameCombosCmd)

	frameCombosCmd.Flags().StringVarP(&frameCombosFile, "file", "f", "", "Path to structure file [required]")
	frameCombosCmd.MarkFlagRequired("file")

	frameCombosCmd.Flags().BoolVar(&frameCombosSimplified, "simplified", false, "Use the simplified gravity combinations (1.4D, 1.2D + 1.6L)")
	frameCombosCmd.Flags().BoolVar(&frameCombosAll, "all", false, "Print the reactions of every combination")
	frameCombosCmd.Flags().StringVar(&frameCombosReport, "report", "", "Write a PDF calculation report")
}

func runFrameCombos(cmd *cobra.Command, args []string) error {
	s, err := structfile.LoadFromFile(frameCombosFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}

	combos := nscp.LoadCombinations
	if frameCombosSimplified {
		combos = nscp.SimplifiedCombinations
	}

	logger := newLogger()
	defer logger.Sync()
	solver := frame.NewSolver(logger)

	analysis, err := nscp.Analyze(solver, s, combos)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     LOAD COMBINATION ANALYSIS - NSCP 2015")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "LOAD COMBINATIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, lc := range combos {
		fmt.Fprintf(w, "  (%s)\t%s\n", lc.ID, lc.Description)
	}
	w.Flush()
	fmt.Fprintln(out)

	if frameCombosAll {
		for _, cr := range analysis.Combinations {
			fmt.Fprintf(out, "COMBINATION (%s) %s:\n", cr.Combination.ID, cr.Combination.Description)
			fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Support\tFx (kN)\tFy (kN)\tMz (kN-m)\n")
			for _, rx := range cr.Results.Reactions {
				fmt.Fprintf(w, "  %s\t%.4f\t%.4f\t%.4f\n", rx.ID, rx.Fx, rx.Fy, rx.Mz)
			}
			w.Flush()
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out, "REACTION ENVELOPE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Support\tComponent\tMin\t(combo)\tMax\t(combo)\n")
	fmt.Fprintf(w, "  ───────\t─────────\t───\t───────\t───\t───────\n")
	for _, e := range analysis.Envelopes {
		fmt.Fprintf(w, "  %s\tFx (kN)\t%.4f\t(%s)\t%.4f\t(%s)\n", e.SupportID, e.MinFx.Value, e.MinFx.Combination, e.MaxFx.Value, e.MaxFx.Combination)
		fmt.Fprintf(w, "  \tFy (kN)\t%.4f\t(%s)\t%.4f\t(%s)\n", e.MinFy.Value, e.MinFy.Combination, e.MaxFy.Value, e.MaxFy.Combination)
		fmt.Fprintf(w, "  \tMz (kN-m)\t%.4f\t(%s)\t%.4f\t(%s)\n", e.MinMz.Value, e.MinMz.Combination, e.MaxMz.Value, e.MaxMz.Combination)
	}
	w.Flush()
	fmt.Fprintln(out)

	if frameCombosReport != "" {
		res, err := solver.Solve(s)
		if err != nil {
			return err
		}
		if err := writeReportFile(frameCombosReport, report.Data{
			Input:        report.Input{Project: frameCombosFile},
			Structure:    s,
			Results:      res,
			Combinations: analysis,
		}); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  Report written to: %s\n", frameCombosReport)
	}
	return nil
}
