// Package main is the entry point for the ghcost CLI.
package main

import (
	"os"

	"ghcost/cmd/cli/cmd"
	"ghcost/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
