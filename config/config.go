// SPDX-License-Identifier: MIT
// Package: fairalloc/config
//
// config.go — configuration of the engine and the paretoimprove command.
//
// Sources, highest priority first: bound command-line flags, PARETO_* environment
// variables (PARETO_ENGINE_MAX_ITERATIONS for engine.max_iterations), the config
// file, defaults.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/feasibility"
	"github.com/katalvlaran/fairalloc/pareto"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PARETO"

// Config is the complete configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	IO      IOConfig      `mapstructure:"io" yaml:"io"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// EngineConfig tunes the numeric behaviour of the improvement run.
type EngineConfig struct {
	// Tolerance for validating fractions and item sums.
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	// LPTolerance compares opt1 and opt2 and sizes the welfare floor slack.
	LPTolerance float64 `mapstructure:"lp_tolerance" yaml:"lp_tolerance"`
	// SimplexTolerance is the reduced-cost tolerance of the simplex solver.
	SimplexTolerance float64 `mapstructure:"simplex_tolerance" yaml:"simplex_tolerance"`
	// MaxIterations caps cycle iterations; 0 means the initial candidate edge count.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// IOConfig selects the instance source and the report destination.
type IOConfig struct {
	Input        string `mapstructure:"input" yaml:"input"`
	Format       string `mapstructure:"format" yaml:"format"`
	Output       string `mapstructure:"output" yaml:"output"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// LoggingConfig configures the zap logger behind logr.
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Verbosity   int    `mapstructure:"verbosity" yaml:"verbosity"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	// File receives the run's metrics in text exposition format; empty disables it.
	File string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Tolerance:        allocation.DefaultTolerance,
			LPTolerance:      feasibility.DefaultTolerance,
			SimplexTolerance: feasibility.DefaultSimplexTolerance,
			MaxIterations:    0,
		},
		IO: IOConfig{
			Input:        "-",
			Format:       "auto",
			Output:       "-",
			OutputFormat: "text",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Verbosity: 0,
		},
	}
}

// SetDefaults registers Default() with v and enables PARETO_* environment lookup.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine.tolerance", d.Engine.Tolerance)
	v.SetDefault("engine.lp_tolerance", d.Engine.LPTolerance)
	v.SetDefault("engine.simplex_tolerance", d.Engine.SimplexTolerance)
	v.SetDefault("engine.max_iterations", d.Engine.MaxIterations)

	v.SetDefault("io.input", d.IO.Input)
	v.SetDefault("io.format", d.IO.Format)
	v.SetDefault("io.output", d.IO.Output)
	v.SetDefault("io.output_format", d.IO.OutputFormat)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.verbosity", d.Logging.Verbosity)
	v.SetDefault("logging.development", d.Logging.Development)

	v.SetDefault("metrics.file", d.Metrics.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads v into a Config and validates it. If file is non-empty it is read
// first; a missing file is an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// EngineOptions maps the configuration onto engine options.
func (c *Config) EngineOptions(log logr.Logger, m *pareto.Metrics) []pareto.Option {
	opts := []pareto.Option{
		pareto.WithLogger(log),
		pareto.WithTolerance(c.Engine.LPTolerance),
		pareto.WithMaxIterations(c.Engine.MaxIterations),
		pareto.WithSolver(feasibility.NewSimplexSolver(c.Engine.SimplexTolerance)),
	}
	if m != nil {
		opts = append(opts, pareto.WithMetrics(m))
	}

	return opts
}

// AllocationOptions returns the options used to build allocations from input.
func (c *Config) AllocationOptions() []allocation.Option {
	return []allocation.Option{allocation.WithTolerance(c.Engine.Tolerance)}
}

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var ve ValidationErrors

	return errors.As(err, &ve)
}
