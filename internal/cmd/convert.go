package cmd

import (
	"time"

	"github.com/dsmmcken/osh/internal/maintain"
	"github.com/spf13/cobra"
)

func addConvertCommands(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "convert PATH...",
		Short: "Convert any recognized source to the canonical .osh format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convertEach(maintain.Convert),
	})
	parent.AddCommand(&cobra.Command{
		Use:   "convert-osh-legacy PATH...",
		Short: "Convert a pre-release .osh_legacy file to the canonical .osh format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convertEach(maintain.ConvertOshLegacy),
	})
	parent.AddCommand(&cobra.Command{
		Use:   "convert-old-osh PATH...",
		Short: "Convert a pre-binary JSON-lines .osh file to the canonical .osh format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convertEach(maintain.ConvertOldOsh),
	})
}

func convertEach(convert func(path string, timeout time.Duration) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := convert(path, lockTimeout()); err != nil {
				return err
			}
		}
		return nil
	}
}
