package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/welcome/webapp/internal/config"
	"github.com/welcome/webapp/internal/logging"
	"github.com/welcome/webapp/internal/server"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

var (
	host    string
	port    int
	debug   bool
	metrics bool
)

var rootCmd = &cobra.Command{
	Use:           "webapp",
	Short:         "Serve the welcome page and health check",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	bindFlags(rootCmd)
}

func bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&host, "host", "", "Host to bind. (Env: WEBAPP_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "Port to bind. (Env: WEBAPP_PORT)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Development logging, never a remote debugger. (Env: WEBAPP_DEBUG)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose /metrics. (Env: WEBAPP_METRICS)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the environment, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = host
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled = metrics
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv := server.New(cfg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
