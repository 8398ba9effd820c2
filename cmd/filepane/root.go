package main

import (
	"context"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filepane/cmd/filepane/opts"
	"github.com/walteh/filepane/pkg/config"
	"github.com/walteh/filepane/pkg/engine"
	"github.com/walteh/filepane/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	async      bool
)

// loadRootOpts fills in the shared dependencies once flags are parsed
func loadRootOpts(ctx context.Context, console io.Writer, o *opts.RootOpts) error {
	cfg, err := config.LoadOrDefault(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	logger := log.New(console, *zerolog.Ctx(ctx)).WithLimit(cfg.LogLimit)
	reg := prometheus.NewRegistry()

	eng, err := engine.NewFromConfig(ctx, cfg, logger, reg)
	if err != nil {
		return errors.Errorf("creating engine: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("engine ready")

	o.Config = cfg
	o.Engine = eng
	o.Logger = logger
	o.Registry = reg
	o.Runner = engine.NewRunner(zerolog.Ctx(ctx), async)
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run operations asynchronously")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}
