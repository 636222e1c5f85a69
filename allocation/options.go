// SPDX-License-Identifier: MIT

package allocation

import (
	"fmt"
	"math"
)

// DefaultTolerance is the absolute slack used when checking that an item's
// fractions sum to 1 and that a fraction is integral.
const DefaultTolerance = 1e-9

// Option configures allocation construction.
type Option func(*options)

type options struct {
	tol float64
}

func defaultOptions() options {
	return options{tol: DefaultTolerance}
}

// WithTolerance sets the numeric tolerance for the sum-to-1 and integrality checks.
// Panics if eps is negative, NaN or Inf; option constructors are the only place
// this package panics.
func WithTolerance(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("allocation: WithTolerance(%v): tolerance must be finite and >= 0", eps))
	}

	return func(o *options) { o.tol = eps }
}
