package cmd

import (
	"fmt"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/dsmmcken/osh/internal/maintain"
	"github.com/spf13/cobra"
)

func addReportCommand(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Print a summary report of recorded command history",
		RunE:  runReport,
	})
}

func runReport(cmd *cobra.Command, args []string) error {
	events, err := readEventsFromBase(config.BaseDir())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), maintain.FlavorText(maintain.BuildReport(events)))
	return nil
}
