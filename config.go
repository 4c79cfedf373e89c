package lae

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON, YAML or environment variables through viper.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler" mapstructure:"scheduler"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing" mapstructure:"tracing"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
}

type SchedulerConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
	// FatigueFactors, when set, must hold one positive factor per worker.
	FatigueFactors []float64 `json:"fatigueFactors,omitempty" yaml:"fatigueFactors,omitempty" mapstructure:"fatigueFactors"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	File    string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

type MetricsConfig struct {
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// HistoryConfig bounds the number of retained run records; zero keeps all.
type HistoryConfig struct {
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// DefaultConfig returns a Config with one worker per CPU and info level text
// logging.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{Workers: runtime.NumCPU()},
		Log:       LogConfig{Level: "info", Format: "text"},
		History:   HistoryConfig{Limit: 100},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Scheduler.Workers <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.workers must be > 0, got %d", c.Scheduler.Workers))
	}
	if n := len(c.Scheduler.FatigueFactors); n > 0 && n != c.Scheduler.Workers {
		errs = append(errs, fmt.Errorf("scheduler.fatigueFactors has %d entries for %d workers", n, c.Scheduler.Workers))
	}
	for i, factor := range c.Scheduler.FatigueFactors {
		if factor <= 0 {
			errs = append(errs, fmt.Errorf("scheduler.fatigueFactors[%d] must be > 0", i))
		}
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must be >= 0, got %d", c.History.Limit))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
