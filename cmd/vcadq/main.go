// Package main is the entry point for the vcadq CLI.
package main

import (
	"os"

	"github.com/runger/vcadq/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
