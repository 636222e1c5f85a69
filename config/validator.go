// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string // dotted key, e.g. "engine.lp_tolerance"
	Value   any
	Message string
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid field of one Config.
type ValidationErrors []ValidationError

// Error implements error.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return "config: " + e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "config: %d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}

	return sb.String()
}

// Accepted enumerations.
var (
	InputFormats  = []string{"auto", "yaml", "json", "csv"}
	OutputFormats = []string{"text", "yaml", "json", "csv"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

// Validate returns every invalid field; nil means the Config is usable.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	tol := func(field string, v float64, allowZero bool) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, ValidationError{field, v, "must be finite"})
		case v < 0 || (!allowZero && v == 0):
			errs = append(errs, ValidationError{field, v, "must be positive"})
		case v >= 1:
			errs = append(errs, ValidationError{field, v, "must be below 1"})
		}
	}
	tol("engine.tolerance", c.Engine.Tolerance, true)
	tol("engine.lp_tolerance", c.Engine.LPTolerance, false)
	tol("engine.simplex_tolerance", c.Engine.SimplexTolerance, false)
	if c.Engine.MaxIterations < 0 {
		errs = append(errs, ValidationError{"engine.max_iterations", c.Engine.MaxIterations, "must be ≥ 0"})
	}

	if !slices.Contains(InputFormats, c.IO.Format) {
		errs = append(errs, ValidationError{"io.format", c.IO.Format, "must be one of " + strings.Join(InputFormats, ", ")})
	}
	if !slices.Contains(OutputFormats, c.IO.OutputFormat) {
		errs = append(errs, ValidationError{"io.output_format", c.IO.OutputFormat, "must be one of " + strings.Join(OutputFormats, ", ")})
	}
	if c.IO.Input == "" {
		errs = append(errs, ValidationError{"io.input", c.IO.Input, "must not be empty (use - for stdin)"})
	}
	if c.IO.Format == "auto" && c.IO.Input == "-" {
		errs = append(errs, ValidationError{"io.format", c.IO.Format, "cannot be detected from stdin"})
	}

	if !slices.Contains(LogLevels, c.Logging.Level) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of " + strings.Join(LogLevels, ", ")})
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 2 {
		errs = append(errs, ValidationError{"logging.verbosity", c.Logging.Verbosity, "must be 0, 1 or 2"})
	}

	return errs
}
