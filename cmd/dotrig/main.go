package main

import (
	"os"

	"github.com/arthur-debert/dotrig/cmd/dotrig/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
