// SPDX-License-Identifier: MIT

package instance

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	nameColumn       = "name"
	valuationSuffix  = "-valuation"
	allocationSuffix = "-allocation"
)

// ReadFile opens path and decodes it. FormatAuto picks the format from the
// file extension.
func ReadFile(path string, f Format) (*Instance, error) {
	if f == FormatAuto {
		var err error
		if f, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile(%q): %w", path, err)
	}
	defer func() { _ = file.Close() }()

	in, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("ReadFile(%q): %w", path, err)
	}

	return in, nil
}

// Decode reads one instance in format f from r.
func Decode(r io.Reader, f Format) (*Instance, error) {
	var (
		in  *Instance
		err error
	)
	switch f {
	case FormatYAML:
		in, err = decodeYAML(r)
	case FormatJSON:
		in, err = decodeJSON(r)
	case FormatCSV:
		in, err = ReadCSV(r)
	default:
		return nil, fmt.Errorf("Decode(%q): %w", f, ErrFormat)
	}
	if err != nil {
		return nil, err
	}
	if len(in.Agents) == 0 {
		return nil, fmt.Errorf("Decode: %w", ErrNoAgents)
	}

	return in, nil
}

func decodeYAML(r io.Reader) (*Instance, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var in Instance
	if err := dec.Decode(&in); err != nil {
		// the decoder reports an empty document as io.EOF
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decodeYAML: %w", ErrNoAgents)
		}
		return nil, fmt.Errorf("decodeYAML: %v: %w", err, ErrMalformed)
	}

	return &in, nil
}

func decodeJSON(r io.Reader) (*Instance, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var in Instance
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decodeJSON: %w", ErrNoAgents)
		}
		return nil, fmt.Errorf("decodeJSON: %v: %w", err, ErrMalformed)
	}

	return &in, nil
}

// column describes one non-name CSV column.
type column struct {
	item       string
	allocation bool
}

// ReadCSV reads the spreadsheet layout: a "name" column, then one
// "<item>-valuation" and one "<item>-allocation" column per item, in any order.
// Blank cells count as 0.
func ReadCSV(r io.Reader) (*Instance, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %v: %w", err, ErrMalformed)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ReadCSV: %w", ErrNoAgents)
	}

	header := records[0]
	nameAt := -1
	cols := make(map[int]column, len(header))
	seen := make(map[column]bool, len(header))
	for c, h := range header {
		h = strings.TrimSpace(h)
		var col column
		switch {
		case strings.EqualFold(h, nameColumn):
			if nameAt >= 0 {
				return nil, fmt.Errorf("ReadCSV: duplicate name column: %w", ErrMalformed)
			}
			nameAt = c
			continue
		case strings.HasSuffix(h, valuationSuffix):
			col = column{item: strings.TrimSuffix(h, valuationSuffix)}
		case strings.HasSuffix(h, allocationSuffix):
			col = column{item: strings.TrimSuffix(h, allocationSuffix), allocation: true}
		default:
			return nil, fmt.Errorf("ReadCSV: column %d %q: want name, <item>%s or <item>%s: %w",
				c+1, h, valuationSuffix, allocationSuffix, ErrMalformed)
		}
		if col.item == "" {
			return nil, fmt.Errorf("ReadCSV: column %d %q: empty item: %w", c+1, h, ErrMalformed)
		}
		if seen[col] {
			return nil, fmt.Errorf("ReadCSV: column %d %q: duplicate: %w", c+1, h, ErrMalformed)
		}
		seen[col] = true
		cols[c] = col
	}
	if nameAt < 0 {
		return nil, fmt.Errorf("ReadCSV: missing %q column: %w", nameColumn, ErrMalformed)
	}

	in := &Instance{Agents: make([]AgentRecord, 0, len(records)-1)}
	for n, rec := range records[1:] {
		row := n + 2
		ar := AgentRecord{
			Name:       strings.TrimSpace(rec[nameAt]),
			Valuation:  make(map[string]float64),
			Allocation: make(map[string]float64),
		}
		if ar.Name == "" {
			return nil, fmt.Errorf("ReadCSV: row %d: empty name: %w", row, ErrMalformed)
		}
		for c, col := range cols {
			cell := strings.TrimSpace(rec[c])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("ReadCSV: row %d column %q: %v: %w", row, header[c], err, ErrMalformed)
			}
			if col.allocation {
				ar.Allocation[col.item] = v
			} else {
				ar.Valuation[col.item] = v
			}
		}
		in.Agents = append(in.Agents, ar)
	}

	return in, nil
}
