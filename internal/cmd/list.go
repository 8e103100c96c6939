package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/spf13/cobra"
)

func addListCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every recorded event as one plain-text line",
		RunE:  runList,
	}
	parent.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := openMergedStream(config.BaseDir())
	if err != nil {
		return err
	}
	defer m.Close()

	out := cmd.OutOrStdout()
	for m.Next() {
		e := m.Event()
		quoted, _ := json.Marshal(e.Command) // marshaling a string cannot fail
		fmt.Fprintf(out, "%s -- %s\n", e.Timestamp, quoted)
	}
	return m.Err()
}
