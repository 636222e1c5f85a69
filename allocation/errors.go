// SPDX-License-Identifier: MIT
// Package: fairalloc/allocation
//
// errors.go — sentinel errors for the allocation package.
//
// Error policy:
//   • Every validation failure matches ErrInvalidAllocation via errors.Is.
//   • The narrower sentinels below wrap ErrInvalidAllocation so callers may branch
//     on either level.
//   • Context (agent names, item ids, sums) is attached with %w at the failure site.

package allocation

import (
	"errors"
	"fmt"
)

// ErrInvalidAllocation indicates the supplied agents/fractions violate the
// allocation contract (sum-to-1 per item, fractions in [0,1], matching lengths,
// non-empty agents and items). Always fatal to the call.
var ErrInvalidAllocation = errors.New("allocation: invalid allocation")

// ErrUnknownAgent is returned when an operation names an agent the allocation does not hold.
var ErrUnknownAgent = fmt.Errorf("%w: unknown agent", ErrInvalidAllocation)

// ErrUnknownItem is returned when an operation names an item outside the allocation's item set.
var ErrUnknownItem = fmt.Errorf("%w: unknown item", ErrInvalidAllocation)

// ErrItemSum is returned when an item's fractions across agents do not sum to 1.
var ErrItemSum = fmt.Errorf("%w: item fractions do not sum to 1", ErrInvalidAllocation)

