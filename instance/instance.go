// SPDX-License-Identifier: MIT
// Package: fairalloc/instance
//
// instance.go — the serializable form of an allocation problem.
//
// Contract:
//   • Instance keeps agent order as read; items are the sorted union of every
//     valuation and allocation key.
//   • Items no agent holds any share of are dropped when the Instance is turned
//     into an Allocation (nothing to improve on them).
//   • Instance is plain data: no validation happens until Allocation is called.

package instance

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/fairalloc/allocation"
)

// Format names an encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text" // output only
)

// ParseFormat maps a user-supplied name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatYAML, FormatJSON, FormatCSV, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("ParseFormat(%q): %w", s, ErrFormat)
	}
}

// DetectFormat infers the input format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("DetectFormat(%q): unknown extension: %w", path, ErrFormat)
	}
}

// AgentRecord is one agent: its additive valuation and current shares.
// Utility is filled in reports and ignored on input.
type AgentRecord struct {
	Name       string             `yaml:"name" json:"name"`
	Valuation  map[string]float64 `yaml:"valuation" json:"valuation"`
	Allocation map[string]float64 `yaml:"allocation" json:"allocation"`
	Utility    float64            `yaml:"utility,omitempty" json:"utility,omitempty"`
}

// Instance is an allocation problem as read from or written to disk.
type Instance struct {
	Agents []AgentRecord `yaml:"agents" json:"agents"`
}

// Items returns the sorted union of every item mentioned by any agent.
func (in *Instance) Items() []string {
	seen := make(map[string]struct{})
	for _, ar := range in.Agents {
		for it := range ar.Valuation {
			seen[it] = struct{}{}
		}
		for it := range ar.Allocation {
			seen[it] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for it := range seen {
		out = append(out, it)
	}
	sort.Strings(out)

	return out
}

// Allocation builds the fractional allocation described by in, with one
// AdditiveAgent per record.
func (in *Instance) Allocation(opts ...allocation.Option) (*allocation.Allocation, error) {
	if len(in.Agents) == 0 {
		return nil, fmt.Errorf("Allocation: %w", ErrNoAgents)
	}

	held := make(map[string]bool)
	for _, ar := range in.Agents {
		for it, f := range ar.Allocation {
			if f != 0 {
				held[it] = true
			}
		}
	}

	agents := make([]allocation.Agent, len(in.Agents))
	fractions := make([]map[string]float64, len(in.Agents))
	for i, ar := range in.Agents {
		agents[i] = allocation.NewAdditiveAgent(ar.Name, ar.Valuation)
		fm := make(map[string]float64, len(ar.Allocation))
		for it, f := range ar.Allocation {
			if held[it] {
				fm[it] = f
			}
		}
		fractions[i] = fm
	}

	a, err := allocation.FromFractions(agents, fractions, opts...)
	if err != nil {
		return nil, fmt.Errorf("Allocation: %w", err)
	}

	return a, nil
}

// FromAllocation captures a as an Instance. Valuations cover every item of a;
// allocation maps list non-zero shares only.
func FromAllocation(a *allocation.Allocation) *Instance {
	items := a.Items()
	fractions := a.Fractions()
	in := &Instance{Agents: make([]AgentRecord, 0, a.NumAgents())}
	for i, ag := range a.Agents() {
		rec := AgentRecord{
			Name:       ag.Name(),
			Valuation:  make(map[string]float64, len(items)),
			Allocation: make(map[string]float64),
			Utility:    a.Utility(i),
		}
		for _, it := range items {
			rec.Valuation[it] = ag.Value(it)
			if f := fractions[i][it]; f > a.Tolerance() {
				rec.Allocation[it] = f
			}
		}
		in.Agents = append(in.Agents, rec)
	}

	return in
}

// Report is the machine-readable result document.
type Report struct {
	Welfare  float64       `yaml:"welfare" json:"welfare"`
	Complete bool          `yaml:"complete" json:"complete"`
	Agents   []AgentRecord `yaml:"agents" json:"agents"`
}

// NewReport summarizes a.
func NewReport(a *allocation.Allocation) *Report {
	return &Report{
		Welfare:  a.Welfare(),
		Complete: a.IsComplete(),
		Agents:   FromAllocation(a).Agents,
	}
}
