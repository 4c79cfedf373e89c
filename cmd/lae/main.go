// Command lae evaluates a matrix expression document:
//
//	lae <threads> <input> <output>
//
// Evaluation failures are written to the output as {"error": "..."}; the
// process exits non-zero only for invalid arguments, invalid configuration or
// an output that cannot be written.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
