// Command slime-finder searches seed-derived chunk grids for large solid
// clusters of slime chunks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/config"
	"github.com/ironsheep/slime-finder/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFile    string
	debug      bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slime-finder",
	Short: "Search world seeds for large rectangular slime chunk clusters",
	Long: `slime-finder scans the chunk grid of many world seeds, flood-fills every
cluster of edge-adjacent slime chunks, scores each cluster by its largest solid
rectangle and reports the clusters that pass the size policy.

Logs go to stderr; results go to stdout and the configured collectors.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Logging.Path = logFile
		}
		if cmd.Flags().Changed("debug") {
			cfg.Logging.Debug = debug
		}

		logger, err = logging.New(logging.Options{
			Level: cfg.Logging.Level,
			Path:  cfg.Logging.Path,
			Debug: cfg.Logging.Debug,
		})
		if err != nil {
			return err
		}
		logger.Debug("slime-finder starting",
			zap.String("version", Version),
			zap.String("build_time", BuildTime),
			zap.String("commit", GitCommit))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (or set "+config.LogLevelEnv+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Development logging at debug level")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
