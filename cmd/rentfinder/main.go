// Package main is the entry point for the rentfinder CLI.
package main

import (
	"os"

	"github.com/rentfinder/rentfinder/cmd/rentfinder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
