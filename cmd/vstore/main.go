package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vstore/internal/config"
	"github.com/vango-dev/vstore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "vstore",
		Short: "Observable state stores with slice bindings",
		Long: `vstore demonstrates an observable state store whose consumers
subscribe to derived slices and re-render only when their slice changes.

  • demo     interactive todo list with three independently bound views
  • inspect  serve a read-only inspector and Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to "+config.ConfigFileName)
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		demoCmd(opts),
		inspectCmd(opts),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.FromError(err, "E120").Format())
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the defaults, then
// applies flag overrides and validates.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.New()
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger and installs it as the slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return logger
}
