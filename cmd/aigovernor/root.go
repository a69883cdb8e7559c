package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aigovernor",
	Short: "aigovernor - request governance for outbound AI provider calls",
	Long: `aigovernor is a request governance layer for outbound AI provider
calls. Every AI call passes through three gates before reaching a
provider:

  - Per-category token bucket rate limiting
  - Monthly budget enforcement against an append-only cost ledger
  - Classified retry with exponential backoff

The daemon exposes an admin HTTP server for health, budget status, and
Prometheus metrics. Application code calls the governed client as a
library.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
