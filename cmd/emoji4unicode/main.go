// Package main provides the CLI entrypoint for emoji4unicode.
//
// emoji4unicode is the symbol registry toolchain that:
//   - Loads the registry document plus the per-vendor symbol tables
//   - Allocates code points for symbols proposed for new encoding
//   - Renders the background HTML chart and the cross-mapping data file
//   - Rewrites the registry document into its canonical diff-friendly form
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCommand(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
