// SPDX-License-Identifier: MIT

package instance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fairalloc/allocation"
)

// Encode writes a to w in format f:
//
//	text  one line per agent (allocation.Render)
//	yaml  Report document
//	json  Report document, two-space indent
//	csv   the spreadsheet layout accepted by ReadCSV
func Encode(w io.Writer, a *allocation.Allocation, f Format) error {
	switch f {
	case FormatText:
		if _, err := io.WriteString(w, a.Render()); err != nil {
			return fmt.Errorf("Encode(text): %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(a)); err != nil {
			return fmt.Errorf("Encode(yaml): %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("Encode(yaml): %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewReport(a)); err != nil {
			return fmt.Errorf("Encode(json): %w", err)
		}
	case FormatCSV:
		if err := WriteCSV(w, FromAllocation(a), a.Items()); err != nil {
			return fmt.Errorf("Encode(csv): %w", err)
		}
	default:
		return fmt.Errorf("Encode(%q): %w", f, ErrFormat)
	}

	return nil
}

// WriteCSV writes in in the spreadsheet layout with the given item column order.
// A nil items uses in.Items().
func WriteCSV(w io.Writer, in *Instance, items []string) error {
	if items == nil {
		items = in.Items()
	}
	writer := csv.NewWriter(w)

	header := make([]string, 0, 1+2*len(items))
	header = append(header, nameColumn)
	for _, it := range items {
		header = append(header, it+valuationSuffix)
	}
	for _, it := range items {
		header = append(header, it+allocationSuffix)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}

	for _, ar := range in.Agents {
		record := make([]string, 0, len(header))
		record = append(record, ar.Name)
		for _, it := range items {
			record = append(record, formatFloat(ar.Valuation[it]))
		}
		for _, it := range items {
			record = append(record, formatFloat(ar.Allocation[it]))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("WriteCSV: agent %q: %w", ar.Name, err)
		}
	}
	writer.Flush()

	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
