// Command modhooks inspects and exercises the extension hook engine.
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	buildVersion = "dev"
	commit       = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
