// Package main provides the entry point for the folio CLI.
package main

import (
	"os"

	"github.com/nikbrunner/folio/cmd/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
