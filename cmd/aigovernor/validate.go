package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weareasocialyazilim/aigovernor/pkg/cli"
	"github.com/weareasocialyazilim/aigovernor/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file without starting the
daemon. Checks budget cap ordering, rate limit parameters, the retry
policy, the ledger backend, cost estimates, and the report schedule.

Examples:
  # Validate the default config
  aigovernor validate

  # Validate a specific file
  aigovernor validate --config /etc/aigovernor/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "✓ Configuration valid")
	fmt.Fprintf(out, "  Ledger backend:  %s\n", cfg.Ledger.Backend)
	fmt.Fprintf(out, "  Soft limit:      %d units\n", cfg.Budget.SoftLimitUnits)
	fmt.Fprintf(out, "  Hard limit:      %d units\n", cfg.Budget.HardLimitUnits)
	fmt.Fprintf(out, "  Rate categories: %d\n", len(cfg.RateLimits))
	fmt.Fprintf(out, "  Cost estimates:  %d services\n", len(cfg.Costs.EstimateUnits))
	return nil
}
