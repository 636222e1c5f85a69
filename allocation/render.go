// SPDX-License-Identifier: MIT
// Package: fairalloc/allocation
//
// render.go — per-agent text rendering of an Allocation.

package allocation

import (
	"strconv"
	"strings"
)

// Render groups items by agent for reporting, one line per agent:
//
//	agent1 gets {b:0.3, c} with value 80.
//
// Wholly held items print bare, partial shares print as item:fraction and items
// the agent does not hold are omitted. The value is the agent's valuation of the
// wholly held items only.
func (a *Allocation) Render() string {
	var sb strings.Builder
	for i, ag := range a.agents {
		var parts []string
		var whole []string
		for j, it := range a.items {
			f := a.fractions[i][j]
			switch {
			case a.isZero(f):
				continue
			case a.isWhole(f):
				parts = append(parts, it)
				whole = append(whole, it)
			default:
				parts = append(parts, it+":"+strconv.FormatFloat(f, 'g', 6, 64))
			}
		}
		sb.WriteString(ag.Name())
		sb.WriteString(" gets {")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("} with value ")
		sb.WriteString(strconv.FormatFloat(ag.Value(whole...), 'g', -1, 64))
		sb.WriteString(".\n")
	}

	return sb.String()
}

// String implements fmt.Stringer via Render.
func (a *Allocation) String() string { return a.Render() }
