// Package main is the entry point for the steamcalc CLI.
package main

import (
	"os"

	"github.com/Simplici0/steam.works/cmd/steamcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
