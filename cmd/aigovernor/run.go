package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/weareasocialyazilim/aigovernor/pkg/cli"
	"github.com/weareasocialyazilim/aigovernor/pkg/config"
	"github.com/weareasocialyazilim/aigovernor/pkg/costs"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/budget"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/ratelimit"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/retry"
	"github.com/weareasocialyazilim/aigovernor/pkg/ledger"
	"github.com/weareasocialyazilim/aigovernor/pkg/server"
	"github.com/weareasocialyazilim/aigovernor/pkg/telemetry/logging"
	"github.com/weareasocialyazilim/aigovernor/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watch         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the aigovernor daemon",
	Long: `Start the aigovernor daemon with the specified configuration.

The daemon wires the rate limiter, budget governor, and retry executor
into a governed client, starts the scheduled budget reporter, and
serves health, status, and metrics on the admin HTTP address.

Examples:
  # Start with default config
  aigovernor run

  # Start with custom config
  aigovernor run --config /etc/aigovernor/config.yaml

  # Override admin listen address
  aigovernor run --listen 0.0.0.0:9090

  # Validate config without starting
  aigovernor run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override admin listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", true, "hot-reload cost estimates and budget caps on config change")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Admin.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("aigovernor v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Cost ledger store
	store, err := openLedgerStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()
	fmt.Printf("✓ Cost ledger initialized (%s backend)\n", cfg.Ledger.Backend)

	// Metrics registry
	m := metrics.New(prometheus.NewRegistry())

	// Cost estimate table
	table := costs.NewTable(cfg.Costs.EstimateUnits)

	// Rate limiter
	limiterConfigs := make(map[string]ratelimit.Config, len(cfg.RateLimits))
	for category, rl := range cfg.RateLimits {
		limiterConfigs[category] = ratelimit.Config{
			Capacity:        rl.Capacity,
			RefillRatePerMs: rl.RefillRatePerMs,
		}
	}
	limiter := ratelimit.NewLimiter(limiterConfigs)
	fmt.Printf("✓ Rate limiter configured (%d categories)\n", len(limiterConfigs))

	// Budget governor
	bg := budget.NewGovernor(store, table, budget.Config{
		SoftLimitUnits: cfg.Budget.SoftLimitUnits,
		HardLimitUnits: cfg.Budget.HardLimitUnits,
		Metrics:        m,
	})

	// Governed client
	client, err := governor.NewClient(governor.Config{
		Limiter: limiter,
		Budget:  bg,
		Retry: retry.Policy{
			MaxAttempts:         cfg.Retry.MaxAttempts,
			BaseDelay:           cfg.Retry.BaseDelay,
			RateLimitMultiplier: cfg.Retry.RateLimitMultiplier,
		},
		Metrics: m,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	fmt.Println("✓ Governed client assembled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduled budget reporter
	reporter := budget.NewReporter(bg, cfg.Budget.ReportSchedule)
	if err := reporter.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer reporter.Stop()

	// Configuration hot reload: cost estimates and budget caps only.
	if runFlags.watch {
		watcher := config.NewWatcher(cfgFile, logger)
		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) {
				table.Replace(next.Costs.EstimateUnits)
				bg.SetLimits(next.Budget.SoftLimitUnits, next.Budget.HardLimitUnits)
			})
			if err != nil {
				slog.Error("configuration watcher exited", "error", err)
			}
		}()
	}

	// Admin HTTP server, serving the governed client's budget picture
	srv := server.NewServer(&cfg.Admin, client, m)
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Admin server listening on %s\n", cfg.Admin.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.Admin.ListenAddress)
	fmt.Printf("✓ Status endpoint: http://%s/status\n", cfg.Admin.ListenAddress)
	fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Admin.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Admin.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Daemon stopped")
		return nil
	}
}

// openLedgerStore creates the configured ledger backend.
func openLedgerStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Ledger.Backend {
	case "sqlite":
		if dir := filepath.Dir(cfg.Ledger.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create ledger directory %q: %w", dir, err)
			}
		}
		return ledger.NewSQLiteStore(ledger.SQLiteConfig{
			Path:        cfg.Ledger.SQLitePath,
			BusyTimeout: cfg.Ledger.SQLiteBusyTimeout,
		})
	case "memory":
		return ledger.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.Ledger.Backend)
	}
}
