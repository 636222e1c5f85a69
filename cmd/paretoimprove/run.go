// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/config"
	"github.com/katalvlaran/fairalloc/instance"
	"github.com/katalvlaran/fairalloc/pareto"
)

// run executes one improvement: read, improve, write, dump metrics.
// A partial result (iteration limit, no progress, cancellation) is still
// written before the error is returned.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	zl, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	log := zapr.NewLogger(zl).WithName("paretoimprove").WithValues("run", uuid.NewString())

	former, err := readAllocation(cfg, stdin)
	if err != nil {
		return err
	}
	log.V(1).Info("instance loaded", "input", cfg.IO.Input,
		"agents", former.NumAgents(), "items", former.NumItems(), "welfare", former.Welfare())

	var (
		reg     *prometheus.Registry
		metrics *pareto.Metrics
	)
	if cfg.Metrics.File != "" {
		reg = prometheus.NewRegistry()
		if metrics, err = pareto.NewMetrics(reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	res, runErr := pareto.New(cfg.EngineOptions(log, metrics)...).Improve(ctx, former, nil)
	if res == nil {
		return runErr
	}
	if runErr != nil {
		log.Error(runErr, "improvement stopped early, writing partial result",
			"state", res.State.String(), "iterations", res.Iterations, "candidateEdges", res.CandidateEdges)
	} else {
		log.Info("improvement finished", "welfareBefore", former.Welfare(),
			"welfareAfter", res.Allocation.Welfare(), "iterations", res.Iterations,
			"commits", res.Commits, "defers", res.Defers, "settled", res.Settled)
	}

	if err = writeReport(cfg.IO, res.Allocation, stdout); err != nil {
		return errors.Join(runErr, err)
	}
	if reg != nil {
		if err = prometheus.WriteToTextfile(cfg.Metrics.File, reg); err != nil {
			return errors.Join(runErr, fmt.Errorf("metrics: %w", err))
		}
	}

	return runErr
}

// newLogger builds the zap backend. Verbosity n enables logr V(n) lines,
// which zapr emits at zap level -n.
func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if c.Verbosity > 0 {
		level = zapcore.Level(-c.Verbosity)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zl, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return zl, nil
}

func readAllocation(cfg *config.Config, stdin io.Reader) (*allocation.Allocation, error) {
	format, err := instance.ParseFormat(cfg.IO.Format)
	if err != nil {
		return nil, err
	}

	var in *instance.Instance
	if cfg.IO.Input == "-" {
		in, err = instance.Decode(stdin, format)
	} else {
		in, err = instance.ReadFile(cfg.IO.Input, format)
	}
	if err != nil {
		return nil, err
	}

	return in.Allocation(cfg.AllocationOptions()...)
}

func writeReport(c config.IOConfig, a *allocation.Allocation, stdout io.Writer) (err error) {
	format, err := instance.ParseFormat(c.OutputFormat)
	if err != nil {
		return err
	}
	if c.Output == "-" {
		return instance.Encode(stdout, a, format)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return instance.Encode(f, a, format)
}
