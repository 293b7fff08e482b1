package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modetab/internal/cmd/output"
	"modetab/pkg/timing"
)

var listFormat string

// modeSummary is one row of the list output.
type modeSummary struct {
	Standard     string `json:"standard" yaml:"standard"`
	ID           string `json:"id" yaml:"id"`
	Size         string `json:"size" yaml:"size"`
	ScanSize     string `json:"scan_size" yaml:"scan_size"`
	RefreshHz    int    `json:"refresh_hz" yaml:"refresh_hz"`
	PixelKHz     int    `json:"pixel_khz" yaml:"pixel_khz"`
	Scan         string `json:"scan" yaml:"scan"`
	PixelDoubled bool   `json:"pixel_doubled" yaml:"pixel_doubled"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the parsed display modes",
	Long:  `Parse the embedded tables and print every mode for inspection.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format: table, json, or yaml (default auto-detect)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cta, vesa, err := parseModes()
	if err != nil {
		return err
	}

	summaries := make([]modeSummary, 0, len(cta)+len(vesa))
	for _, rec := range cta {
		summaries = append(summaries, summarize("cta-861", fmt.Sprintf("vic %d", rec.VIC), &rec.Mode))
	}
	for _, rec := range vesa {
		summaries = append(summaries, summarize("vesa-dmt", rec.Name, &rec.Mode))
	}

	format, err := output.ParseFormat(listFormat)
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(output.DetectFormat(string(format)))
	return formatter.Format(os.Stdout, summaries)
}

func summarize(standard, id string, mode *timing.DisplayMode) modeSummary {
	scan := "progressive"
	if mode.Interlaced() {
		scan = "interlaced"
	}
	return modeSummary{
		Standard:     standard,
		ID:           id,
		Size:         fmt.Sprintf("%dx%d", mode.Size.X, mode.Size.Y),
		ScanSize:     fmt.Sprintf("%dx%d", mode.ScanSize.X, mode.ScanSize.Y),
		RefreshHz:    mode.NominalHz,
		PixelKHz:     mode.PixelKHz,
		Scan:         scan,
		PixelDoubled: mode.Doubling.X == 1,
	}
}
