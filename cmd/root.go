package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/goframe/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "Planar Frame Structural Solver",
	Long: `goframe - Go Planar Frame Solver

A CLI tool for the linear static analysis of 2D frames
by the direct stiffness method.

This tool helps structural engineers perform:
  - Support reaction analysis of beams and frames
  - Equilibrium checks of the computed reactions
  - Factored analysis under NSCP 2015 load combinations
  - Frame diagrams and PDF calculation reports

Every member uses E = 210 GPa, A = 0.01 m² and I = 8.33e-6 m⁴.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   goframe v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Planar Frame Solver                                  ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the linear static analysis of planar frames")
		fmt.Fprintln(out, "  by the direct stiffness method.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Support reactions of pinned, roller and fixed supports")
		fmt.Fprintln(out, "    • NSCP 2015 load combinations and reaction envelopes")
		fmt.Fprintln(out, "    • Structure files in JSON, YAML or Excel")
		fmt.Fprintln(out, "    • Frame diagrams, PDF reports and an HTTP API")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'goframe --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver details to stderr")
}

// newLogger returns the CLI logger: warnings only, or debug with --verbose
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
