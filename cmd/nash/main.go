// Package main is the entry point for the nash shell.
package main

import (
	"os"

	"github.com/runger/nash/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
