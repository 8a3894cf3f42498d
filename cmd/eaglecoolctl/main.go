// Package main is the entry point for the eaglecoolctl CLI tool.
package main

import (
	"os"

	"github.com/eaglecooler/core/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
