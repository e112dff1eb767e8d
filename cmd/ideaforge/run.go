package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ideaforge-hq/ideaforge/pkg/config"
	"ideaforge-hq/ideaforge/pkg/gateway"
	"ideaforge-hq/ideaforge/pkg/ratelimit"
	"ideaforge-hq/ideaforge/pkg/server"
	"ideaforge-hq/ideaforge/pkg/telemetry/health"
	"ideaforge-hq/ideaforge/pkg/telemetry/logging"
	"ideaforge-hq/ideaforge/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watchConfig   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the idea-generation server",
	Long: `Start the idea-generation server with the specified configuration.

The server listens on the configured address and serves POST /v1/ideas,
plus health, readiness, version, and metrics endpoints.

Examples:
  # Start with defaults
  ideaforge run

  # Start with a config file and hot reload
  ideaforge run --config /etc/ideaforge/config.yaml --watch

  # Override listen address
  ideaforge run --listen 0.0.0.0:8080

  # Validate config without starting the server
  ideaforge run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch", false, "reload the config file on change")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Best-effort .env loading; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	_, levelVar, err := logging.Setup(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	apiKey := os.Getenv(cfg.Gateway.APIKeyEnv)
	if apiKey == "" {
		// Not fatal: calls will fail upstream with an auth error, and the
		// readiness probe reports the missing credential.
		slog.Warn("gateway credential not set", "env", cfg.Gateway.APIKeyEnv)
	}

	client := gateway.NewClient(gateway.Config{
		BaseURL:             cfg.Gateway.BaseURL,
		Model:               cfg.Gateway.Model,
		APIKey:              apiKey,
		MaxCompletionTokens: cfg.Gateway.MaxCompletionTokens,
		Timeout:             cfg.Gateway.Timeout,
	})
	defer client.Close()

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	})

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := ratelimit.NewSweeper(limiter, cfg.RateLimit.SweepSchedule)
	sweeper.OnSweep(collector.SetTrackedKeys)
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start rate limit sweeper: %w", err)
	}
	defer sweeper.Stop()

	if runFlags.watchConfig && cfgFile != "" {
		watcher, err := config.NewWatcher(cfgFile, func(next *config.Config) {
			limiter.SetConfig(ratelimit.Config{
				MaxRequests: next.RateLimit.MaxRequests,
				Window:      next.RateLimit.Window,
			})
			if level, err := logging.ParseLevel(next.Telemetry.Logging.Level); err == nil {
				levelVar.Set(level)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		watcher.Start(ctx)
	}

	checker := health.NewChecker()
	checker.Register("gateway", func() error {
		if os.Getenv(cfg.Gateway.APIKeyEnv) == "" {
			return fmt.Errorf("credential %s not set", cfg.Gateway.APIKeyEnv)
		}
		return nil
	})

	srv := server.New(cfg, client, limiter, checker, collector, server.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})

	fmt.Printf("Ideaforge v%s\n", Version)
	fmt.Printf("✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	return srv.Start(ctx)
}
