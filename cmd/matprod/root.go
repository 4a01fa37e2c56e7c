// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/matprod/internal/config"
	"github.com/katalvlaran/matprod/internal/observability"
	"github.com/katalvlaran/matprod/internal/report"
	"github.com/katalvlaran/matprod/internal/session"
	"github.com/katalvlaran/matprod/matrix"
)

const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:   "matprod",
		Short: "Multiply two matrices entered on standard input",
		Long: `matprod prompts for the shapes of A and B, rejects them unless the
column count of A equals the row count of B, reads both matrices element by
element and prints A, B and C = A * B.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, flagConfig, "", "path to a YAML configuration file")
	f.StringVar(&opts.logLevel, flagLogLevel, config.DefaultLogLevel, "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, flagLogFormat, config.DefaultLogFormat, "log format: auto, text or json")

	return cmd
}

// runRoot loads configuration, wires the collaborators and runs one session.
func runRoot(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	// Explicit flags win over the file.
	if cmd.Flags().Changed(flagLogLevel) {
		cfg.Log.Level = opts.logLevel
	}
	if cmd.Flags().Changed(flagLogFormat) {
		cfg.Log.Format = opts.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, err := observability.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	logger, err := observability.NewLogger(cmd.ErrOrStderr(), level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	alloc := matrix.NewTrackingAllocator(
		matrix.WithMaxElements(cfg.Limits.MaxElements),
		matrix.WithRecorder(metrics),
	)

	s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		session.WithLogger(logger),
		session.WithAllocator(alloc),
		session.WithMetrics(metrics),
		session.WithReportOptions(
			report.WithWidth(cfg.Report.Width),
			report.WithPrecision(cfg.Report.Precision),
		),
	)
	err = s.Run()
	logMetrics(cmd.Context(), logger, reg)

	return err
}

// logMetrics dumps the in-process counters at debug level.
func logMetrics(ctx context.Context, logger *slog.Logger, g prometheus.Gatherer) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	families, err := g.Gather()
	if err != nil {
		logger.Debug("metrics unavailable", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"name", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				attrs = append(attrs, "value", m.GetGauge().GetValue())
			}
			logger.Debug("metric", attrs...)
		}
	}
}
