package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/structfile"
	"github.com/spf13/cobra"
)

var (
	frameConvertFile string
	frameConvertTo   string
)

var frameConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a structure file to another format",
	Long: `Convert a structure file between JSON, YAML and Excel.
The formats follow the file extensions.

Examples:
  goframe frame convert --file portal.json --to portal.xlsx
  goframe frame convert -f portal.xlsx --to portal.yaml`,
	RunE: runFrameConvert,
}

func init() {
	frameCmd.AddCommand(frameConvertCmd)

	frameConvertCmd.Flags().StringVarP(&frameConvertFile, "file", "f", "", "Path to structure file [required]")
	frameConvertCmd.Flags().StringVar(&frameConvertTo, "to", "", "Output file (.json, .yaml, .yml, .xlsx) [required]")
	frameConvertCmd.MarkFlagRequired("file")
	frameConvertCmd.MarkFlagRequired("to")
}

func runFrameConvert(cmd *cobra.Command, args []string) error {
	s, err := structfile.LoadFromFile(frameConvertFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}
	if err := structfile.SaveToFile(frameConvertTo, s); err != nil {
		return fmt.Errorf("saving structure: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Converted %s to %s\n", frameConvertFile, frameConvertTo)
	return nil
}
