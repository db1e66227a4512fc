// Command leakage prints the DFT of a windowed complex exponential and how
// far its energy leaks out of the main lobe.
//
// Usage:
//
//	leakage [spectrum] [flags]
//	leakage windows [flags]
//	leakage config [flags]
//
// Examples:
//
//	leakage -n 32 -p 10.3
//	leakage -n 16 -p 4 -w rectangular
//	leakage -p 10.3 -w hann --periodic -o json
//	leakage windows -n 1024 -w rect,hann
//	LEAKAGE_SIZE=64 leakage config
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
