package main

import (
	"os"

	"github.com/dsmmcken/osh/internal/cmd"
	"github.com/dsmmcken/osh/internal/output"
)

func main() {
	if err := cmd.Execute(); err != nil {
		output.PrintError(os.Stderr, err)
		os.Exit(output.ExitCodeFor(err))
	}
}
