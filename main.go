package main

import (
	"os"

	"github.com/idelchi/dirreport/internal/cli"
)

// version is set at build time via ldflags.
//
//nolint:gochecknoglobals // Build-time variable
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
