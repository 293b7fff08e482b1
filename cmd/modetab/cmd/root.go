// Package cmd implements the modetab command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modetab/pkg/logging"
	"modetab/pkg/timing/cta861"
	"modetab/pkg/timing/vesadmt"
)

var (
	verbose bool
	quiet   bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modetab",
	Short: "Display mode table generator",
	Long: `Modetab compiles the CEA-861 detailed timing, sync, and video ID code
tables together with the VESA DMT parameter blocks into a validated static
table of display mode records for the video output layer.

The source tables are embedded text transcribed from the published
standards. Every derived quantity is cross-checked against the redundant
published fields; any disagreement aborts generation, since an inconsistent
timing record can produce an invalid signal on real display hardware.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	// Set up context with signal handling so a redirected run can be
	// interrupted cleanly
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "warnings and errors only")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads ENV variables and configures logging.
func initConfig() {
	viper.SetEnvPrefix("modetab")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configureLogging()
}

// configureLogging sets up the logging system based on flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	logging.SetLevel(level)
}

// parseModes runs the full parsing pipeline over the embedded tables.
func parseModes() ([]*cta861.Record, []*vesadmt.Record, error) {
	cta, err := cta861.Modes()
	if err != nil {
		return nil, nil, err
	}
	vesa, err := vesadmt.Modes()
	if err != nil {
		return nil, nil, err
	}

	logging.Debug().
		Int("cta_modes", len(cta)).
		Int("vesa_modes", len(vesa)).
		Msg("parsed embedded timing tables")
	return cta, vesa, nil
}
