// Package main provides the declint command.
package main

import (
	"os"

	"github.com/leapstack-labs/declint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
