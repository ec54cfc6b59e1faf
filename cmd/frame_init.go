package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/spf13/cobra"
)

var (
	frameInitOutput string
	frameInitForce  bool
)

var frameInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample structure file",
	Long: `Write a sample cantilever structure to start from.
The format follows the file extension (.json, .yaml, .yml, .xlsx).

Examples:
  goframe frame init -o cantilever.json
  goframe frame init -o cantilever.xlsx --force`,
	RunE: runFrameInit,
}

func init() {
	frameCmd.AddCommand(frameInitCmd)

	frameInitCmd.Flags().StringVarP(&frameInitOutput, "output", "o", "frame.json", "Output file")
	frameInitCmd.Flags().BoolVar(&frameInitForce, "force", false, "Overwrite an existing file")
}

func runFrameInit(cmd *cobra.Command, args []string) error {
	if !frameInitForce {
		if _, err := os.Stat(frameInitOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", frameInitOutput)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := structfile.SaveToFile(frameInitOutput, structfile.Template()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Sample structure written to %s\n", frameInitOutput)
	return nil
}
