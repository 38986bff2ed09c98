package main

import (
	"os"

	"github.com/hjkrause/alm-engine/cmd/alm/commands"
)

// main is the entry point for the ALM CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
