// Command statecraft runs the geopolitical survival simulation: an API
// server, plus local commands for creating games, submitting turns, and
// headless balance runs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
