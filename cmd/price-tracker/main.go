package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/priceapi"
)

var (
	// Global flags
	configPath string
	endpoint   string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "price-tracker",
	Short: "Check the current price of a product",
	Long: `price-tracker asks a price-checking service for the price of a product URL.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if endpoint != "" {
			cfg.Endpoint = endpoint
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		// the terminal UI owns the screen, so it only logs to a file
		interactive := !cmd.HasParent() || cmd.Name() == "tui"
		logger, err = newLogger(cfg.Logging, interactive)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "price-checking endpoint (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(tuiCmd, serveCmd, checkCmd)
}

func newLogger(lc config.LoggingConfig, interactive bool) (*zap.Logger, error) {
	if interactive && lc.File == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
	}
	return zc.Build()
}

func newClient() (*priceapi.Client, error) {
	return priceapi.NewClient(cfg.Endpoint,
		priceapi.WithUserAgent(cfg.UserAgent),
		priceapi.WithTimeout(cfg.RequestTimeout),
		priceapi.WithLogger(logger),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
