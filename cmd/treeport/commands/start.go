package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/treeport/internal/logger"
	"github.com/marmos91/treeport/internal/telemetry"
	"github.com/marmos91/treeport/pkg/api"
	"github.com/marmos91/treeport/pkg/command"
	"github.com/marmos91/treeport/pkg/config"
	"github.com/marmos91/treeport/pkg/metrics"
	"github.com/marmos91/treeport/pkg/sandbox"

	// Import prometheus metrics to register init() functions
	_ "github.com/marmos91/treeport/pkg/metrics/prometheus"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the treeport server",
	Long: `Start the treeport server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Examples:
  # Start in background (default)
  treeport start

  # Start in foreground
  treeport start --foreground

  # Start with custom config file
  treeport start --config /etc/treeport/config.yaml

  # Start with environment variable overrides
  TREEPORT_TREE_ROOT=/data TREEPORT_LOGGING_LEVEL=DEBUG treeport start -f`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/treeport/treeport.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/treeport/treeport.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "treeport",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}()

	profilingShutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "treeport",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", logger.Err(err))
		}
	}()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	}

	sb, err := sandbox.New(afero.NewOsFs(), cfg.Tree.Root)
	if err != nil {
		return fmt.Errorf("cannot serve tree: %w", err)
	}
	logger.Info("Serving tree", logger.KeyRoot, sb.Root())

	executor, err := command.NewExecutor(cfg.Command.Executor, command.ProcessOptions{
		Program:   cfg.Command.Program,
		Args:      cfg.Command.Args,
		Timeout:   cfg.Command.Timeout,
		MaxOutput: cfg.Command.MaxOutput.Int64(),
	})
	if err != nil {
		return fmt.Errorf("failed to create command executor: %w", err)
	}
	logger.Info("Command executor configured", logger.KeyExecutor, executor.Name())

	metricsResult := config.InitializeMetrics(cfg)
	if metricsResult.Server == nil {
		logger.Info("Metrics collection disabled")
	}

	apiServer := api.NewServer(cfg.Server, api.Dependencies{
		Sandbox:        sb,
		Executor:       executor,
		Metrics:        metricsResult.ServerMetrics,
		PreviewSize:    cfg.Tree.PreviewSize.Int64(),
		ChunkSize:      int(cfg.Tree.ChunkSize.Int64()),
		MaxCommandBody: cfg.Command.MaxBody.Int64(),
	})

	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- serve(ctx, apiServer, metricsResult.Server)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown",
			"timeout", cfg.ShutdownTimeout)
		if err := shutdown(apiServer, metricsResult.Server, cfg.ShutdownTimeout); err != nil {
			logger.Warn("Graceful shutdown incomplete", logger.Err(err))
		}
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", logger.Err(err))
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		if err != nil {
			logger.Error("Server error", logger.Err(err))
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// serve runs the API server and, when configured, the metrics server until
// ctx is cancelled or either fails.
func serve(ctx context.Context, apiServer *api.Server, metricsServer *metrics.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return apiServer.Start(gctx)
	})
	if metricsServer != nil {
		g.Go(func() error {
			return metricsServer.Start(gctx)
		})
	}

	return g.Wait()
}

// shutdown stops both servers within timeout. In-flight downloads get the
// whole timeout to finish before their connections are closed.
func shutdown(apiServer *api.Server, metricsServer *metrics.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := apiServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if metricsServer != nil {
		if err := metricsServer.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
