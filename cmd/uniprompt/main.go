// Package main provides the entry point for the uniprompt CLI.
package main

import (
	"fmt"
	"os"

	"github.com/uniprompt/uniprompt/cmd/uniprompt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
