// SPDX-License-Identifier: MIT
// Package: fairalloc/instance
//
// errors.go — sentinel errors for instance decoding and encoding.
//
// Error policy:
//   • Format problems (unknown extension, unsupported format name) match ErrFormat.
//   • Content problems (bad CSV header, unparsable number, unknown YAML key) match
//     ErrMalformed and carry the row/column or key in the wrapped message.
//   • Allocation contract violations are reported by the allocation package and
//     match allocation.ErrInvalidAllocation.

package instance

import "errors"

// ErrFormat indicates an unknown or unsupported instance/report format.
var ErrFormat = errors.New("instance: unsupported format")

// ErrMalformed indicates the input could not be parsed into an Instance.
var ErrMalformed = errors.New("instance: malformed input")

// ErrNoAgents indicates a syntactically valid document that lists no agents.
var ErrNoAgents = errors.New("instance: no agents")
