package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weareasocialyazilim/aigovernor/pkg/cli"
	"github.com/weareasocialyazilim/aigovernor/pkg/config"
	"github.com/weareasocialyazilim/aigovernor/pkg/costs"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/budget"
)

var statusFlags struct {
	format string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the month-to-date budget status",
	Long: `Compute and print the month-to-date budget status from the cost
ledger: total spend, remaining budget, percent of the soft cap used,
per-service breakdown, and recommendations when spend is near or over
the caps.

Examples:
  # Human-readable status
  aigovernor status

  # Machine-readable status
  aigovernor status --format json`,
	RunE: printStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json")
}

func printStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	store, err := openLedgerStore(cfg)
	if err != nil {
		return cli.NewCommandError("status", err)
	}
	defer store.Close()

	table := costs.NewTable(cfg.Costs.EstimateUnits)
	bg := budget.NewGovernor(store, table, budget.Config{
		SoftLimitUnits: cfg.Budget.SoftLimitUnits,
		HardLimitUnits: cfg.Budget.HardLimitUnits,
	})

	status, err := bg.Status(context.Background())
	if err != nil {
		return cli.NewCommandError("status", err)
	}

	if statusFlags.format == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), status)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Month-to-date spend: %d units\n", status.MonthToDateUnits)
	fmt.Fprintf(out, "Soft limit:          %d units\n", status.SoftLimitUnits)
	fmt.Fprintf(out, "Hard limit:          %d units\n", status.HardLimitUnits)
	fmt.Fprintf(out, "Remaining:           %d units\n", status.RemainingUnits)
	fmt.Fprintf(out, "Percent used:        %.1f%%\n", status.PercentUsed)

	if len(status.ByService) > 0 {
		fmt.Fprintln(out, "\nBy service:")
		for service, units := range status.ByService {
			fmt.Fprintf(out, "  %-40s %d units\n", service, units)
		}
	}

	if len(status.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range status.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}

	return nil
}
