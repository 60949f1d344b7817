/*
main.go - Application entry point

PURPOSE:
  Command-line front-end of the straight-line depreciation calculator.
  Loads configuration, initialises logging and dispatches to subcommands.

COMMANDS:
  serve      Start the HTTP API (graceful shutdown on SIGINT/SIGTERM)
  schedule   Compute a schedule from a JSON request file and print it
  lives      Print the suggested useful-life table
  version    Print build information

CONFIGURATION:
  --config   Path to a YAML config file (default: ./config/config.yaml,
             optional)
  Environment variables DEPRECIATION_* override file values, and a .env
  file in the working directory is loaded first.

EXAMPLES:
  depreciation serve
  depreciation schedule -f assets.json --as-of 2025-12-31 --currency INR
  depreciation schedule -f assets.json --csv out.csv --detail

SEE ALSO:
  - internal/config: Settings and defaults
  - api/server.go: Router configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/depreciation-engine/internal/config"
	"github.com/warp/depreciation-engine/internal/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "depreciation",
	Short: "Straight-line depreciation schedules for multi-asset portfolios",
	Long: `Computes straight-line depreciation schedules for a set of fixed assets,
monthly or yearly, optionally truncated at a provision date, and merges them
into one table with per-period totals and a net-book-value view.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		// stdout carries tables and CSV; logs go to stderr.
		logger.InitWithOutput(cfg, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(livesCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "depreciation %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}
