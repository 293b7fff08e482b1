package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modetab/internal/cmd/output"
	"modetab/pkg/timing/validate"
)

var validateFormat string

// validationReport is the machine-readable result of a validation run.
type validationReport struct {
	CTAModes   int                  `json:"cta_modes" yaml:"cta_modes"`
	VESAModes  int                  `json:"vesa_modes" yaml:"vesa_modes"`
	Violations []validate.Violation `json:"violations" yaml:"violations"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the embedded timing tables",
	Long: `Run the parsing pipeline and the full consistency validation without
emitting the mode table, reporting the aggregated result.

The exit code is non-zero when any check fails, so the command doubles as a
regression gate for edits to the embedded source tables.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "output format: table, json, or yaml (default auto-detect)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cta, vesa, err := parseModes()
	if err != nil {
		return err
	}

	report := validationReport{
		CTAModes:   len(cta),
		VESAModes:  len(vesa),
		Violations: validate.Modes(cta, vesa),
	}

	format, err := output.ParseFormat(validateFormat)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	if format == output.FormatTable {
		fmt.Printf("Checked %d CEA-861 and %d VESA DMT modes.\n", report.CTAModes, report.VESAModes)
		if len(report.Violations) > 0 {
			fmt.Println()
			formatter := output.NewFormatter(format)
			if err := formatter.Format(os.Stdout, report.Violations); err != nil {
				return err
			}
		}
	} else {
		formatter := output.NewFormatter(format)
		if err := formatter.Format(os.Stdout, report); err != nil {
			return err
		}
	}

	if n := len(report.Violations); n > 0 {
		return fmt.Errorf("%d timing consistency violations", n)
	}
	return nil
}
