package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/dsmmcken/osh/internal/query"
	"github.com/spf13/cobra"
)

var (
	searchModeFlag    string
	searchSessionFlag string
	searchFolderFlag  string
)

func addSearchCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Stream newest-first history records for the fuzzy finder",
		RunE:  runSearch,
	}
	flags := cmd.Flags()
	flags.StringVar(&searchModeFlag, "mode", "", "Filter mode: all, session, folder, or bag (default: config.toml default_mode, or all)")
	flags.StringVar(&searchSessionFlag, "session", "", "Session id to filter by (mode=session)")
	flags.StringVar(&searchFolderFlag, "folder", "", "Folder to filter by (mode=folder)")
	parent.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode := query.Mode(config.ResolveMode(searchModeFlag, os.Getenv("OSH_DEFAULT_MODE")))
	switch mode {
	case query.ModeAll, query.ModeSession, query.ModeFolder, query.ModeBag:
	default:
		return fmt.Errorf("unknown mode %q: expected all, session, folder, or bag", mode)
	}
	now := time.Now()
	loc := now.Location()
	out := cmd.OutOrStdout()

	if mode == query.ModeBag {
		// Bagging aggregates over the entire stream, so there is no
		// early exit to preserve: drain everything.
		events, err := readEventsFromBase(config.BaseDir())
		if err != nil {
			return err
		}
		for _, b := range query.Bag(events) {
			fmt.Fprint(out, query.EntryForBag(b, loc, now), query.RecordSeparator)
		}
		return nil
	}

	m, err := openMergedStream(config.BaseDir())
	if err != nil {
		return err
	}
	defer m.Close()

	for m.Next() {
		e := m.Event()
		if !query.Keep(e, mode, searchSessionFlag, searchFolderFlag) {
			continue
		}
		fmt.Fprint(out, query.EntryForEvent(e, loc, now), query.RecordSeparator)
	}
	return m.Err()
}
