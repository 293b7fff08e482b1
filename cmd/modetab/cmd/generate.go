package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modetab/pkg/emit"
	"modetab/pkg/logging"
	"modetab/pkg/timing"
	"modetab/pkg/timing/validate"
)

var outputPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the static display mode table",
	Long: `Parse the embedded CEA-861 and VESA DMT tables, run the full
consistency validation, and emit the static mode arrays.

Any validation violation aborts generation before output is written: there
is no partial-output mode.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&outputPath, "output", "", "file to generate (default stdout)")
	if err := viper.BindPFlag("output", generateCmd.Flags().Lookup("output")); err != nil {
		panic(fmt.Sprintf("Failed to bind output flag: %v", err))
	}
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cta, vesa, err := parseModes()
	if err != nil {
		return err
	}

	violations := validate.Modes(cta, vesa)
	for _, v := range violations {
		logging.Error().
			Str("mode", v.Mode).
			Str("check", v.Check).
			Msg(v.Detail)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d timing consistency violations; output not written", len(violations))
	}

	ctaModes := make([]timing.DisplayMode, len(cta))
	for i, rec := range cta {
		ctaModes[i] = rec.Mode
	}
	vesaModes := make([]timing.DisplayMode, len(vesa))
	for i, rec := range vesa {
		vesaModes[i] = rec.Mode
	}

	path := viper.GetString("output")
	var w io.Writer = os.Stdout
	var f *os.File
	if path != "" {
		f, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		w = f
	}

	if err := emit.Tables(w, ctaModes, vesaModes); err != nil {
		if f != nil {
			f.Close()
		}
		return fmt.Errorf("writing mode tables: %w", err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
	}

	logging.Info().
		Int("cta_modes", len(ctaModes)).
		Int("vesa_modes", len(vesaModes)).
		Msg("generated display mode table")
	return nil
}
