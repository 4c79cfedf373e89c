package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/lae"
	"github.com/viant/lae/internal/logger"
	"github.com/viant/lae/tracing"
)

const version = "0.1.0"

func newCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "lae <threads> <input> <output>",
		Short:         "Evaluate a matrix expression on a fatigue-scheduled worker pool",
		Version:       version,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}
	flags := cmd.Flags()
	flags.String("config", "", "configuration file (yaml or json)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("trace-file", "", "write OpenTelemetry spans to this file")
	flags.String("metrics-out", "", "write Prometheus metrics in text format to this file")
	flags.Bool("report", true, "print the worker report after evaluation")

	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("tracing.file", flags.Lookup("trace-file"))
	_ = v.BindPFlag("metrics.file", flags.Lookup("metrics-out"))

	defaults := lae.DefaultConfig()
	v.SetDefault("scheduler.workers", defaults.Scheduler.Workers)
	v.SetDefault("scheduler.fatigueFactors", defaults.Scheduler.FatigueFactors)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("history.limit", defaults.History.Limit)
	v.SetEnvPrefix("LAE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	threads, err := strconv.Atoi(args[0])
	if err != nil || threads < 1 {
		return fmt.Errorf("invalid thread count %q: expected a positive integer", args[0])
	}
	config, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	config.Scheduler.Workers = threads
	if err = config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(config.Log.Level, config.Log.Format, cmd.ErrOrStderr())
	registry := prometheus.NewRegistry()
	options := []lae.Option{
		lae.WithConfig(config),
		lae.WithLogger(log),
		lae.WithRegisterer(registry),
	}
	if config.Tracing.Enabled || config.Tracing.File != "" {
		options = append(options, lae.WithTracing("lae", version, config.Tracing.File))
	}
	srv, err := lae.New(options...)
	if err != nil {
		return err
	}
	defer func() {
		_ = srv.Shutdown()
		_ = tracing.Shutdown(context.Background())
	}()

	if err = srv.RunFile(cmd.Context(), args[1], args[2]); err != nil {
		return err
	}
	if report, _ := cmd.Flags().GetBool("report"); report {
		fmt.Fprint(cmd.OutOrStdout(), srv.Report())
	}
	if config.Metrics.File != "" {
		if err = prometheus.WriteToTextfile(config.Metrics.File, registry); err != nil {
			log.WithError(err).Warn("failed to write metrics")
		}
	}
	return nil
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (*lae.Config, error) {
	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %v: %w", file, err)
		}
	}
	config := lae.DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}
