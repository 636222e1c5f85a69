// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/fairalloc/config"
)

// flagKeys binds each flag to its configuration key.
var flagKeys = map[string]string{
	"input":             "io.input",
	"format":            "io.format",
	"output":            "io.output",
	"output-format":     "io.output_format",
	"tolerance":         "engine.tolerance",
	"lp-tolerance":      "engine.lp_tolerance",
	"simplex-tolerance": "engine.simplex_tolerance",
	"max-iterations":    "engine.max_iterations",
	"log-level":         "logging.level",
	"verbose":           "logging.verbosity",
	"log-development":   "logging.development",
	"metrics-file":      "metrics.file",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "paretoimprove [input]",
		Short: "Remove sharing cycles from a fractional allocation",
		Long: `paretoimprove reads agents, their additive valuations and a fractional
allocation of items, and produces an allocation whose consumption graph is
acyclic. Every item ends up owned by exactly one agent and total welfare does
not decrease.

Input formats: yaml, json, csv (name,<item>-valuation...,<item>-allocation...).
Configuration: flags, then PARETO_* environment variables, then --config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("io.input", args[0])
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringP("input", "i", d.IO.Input, "instance file, - for stdin")
	flags.StringP("format", "f", d.IO.Format, "input format: auto, yaml, json, csv")
	flags.StringP("output", "o", d.IO.Output, "report file, - for stdout")
	flags.String("output-format", d.IO.OutputFormat, "report format: text, yaml, json, csv")
	flags.Float64("tolerance", d.Engine.Tolerance, "tolerance for fractions and item sums")
	flags.Float64("lp-tolerance", d.Engine.LPTolerance, "tolerance when comparing LP optima")
	flags.Float64("simplex-tolerance", d.Engine.SimplexTolerance, "simplex reduced-cost tolerance")
	flags.Int("max-iterations", d.Engine.MaxIterations, "cycle iteration cap, 0 for the candidate edge count")
	flags.String("log-level", d.Logging.Level, "log level: debug, info, warn, error")
	flags.CountP("verbose", "v", "log edge decisions (-v) and LP values (-vv)")
	flags.Bool("log-development", d.Logging.Development, "human-readable console logs")
	flags.String("metrics-file", d.Metrics.File, "write Prometheus metrics of the run to this file")

	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})

	return cmd
}
