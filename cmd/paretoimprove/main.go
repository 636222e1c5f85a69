// SPDX-License-Identifier: MIT

// Command paretoimprove reads a fractional allocation and writes an integral,
// acyclic allocation whose total welfare is at least as high.
//
//	paretoimprove instance.csv
//	paretoimprove --format yaml --output-format json < instance.yaml
//	PARETO_ENGINE_MAX_ITERATIONS=50 paretoimprove -vv -c pareto.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
