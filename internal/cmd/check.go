package cmd

import (
	"fmt"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/dsmmcken/osh/internal/maintain"
	"github.com/spf13/cobra"
)

func addCheckCommand(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify every source is in non-decreasing timestamp order",
		RunE:  runCheck,
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, err := maintain.CheckBase(config.BaseDir(), lockTimeout())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
		} else {
			fmt.Fprintf(out, "OK   %s\n", r.Path)
		}
	}
	if failed {
		return fmt.Errorf("check: one or more sources are out of order")
	}
	return nil
}
