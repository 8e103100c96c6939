package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/oshlog"
	"github.com/dsmmcken/osh/internal/source"
	"github.com/spf13/cobra"
)

var (
	appendStartTimeFlag float64
	appendEndTimeFlag   float64
	appendCommandFlag   string
	appendFolderFlag    string
	appendExitCodeFlag  int64
	appendMachineFlag   string
	appendSessionFlag   string
)

func addAppendEventCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "append-event",
		Short: "Record one finished shell command into the local log",
		RunE:  runAppendEvent,
	}
	flags := cmd.Flags()
	flags.Float64Var(&appendStartTimeFlag, "starttime", 0, "POSIX seconds the command started at")
	flags.Float64Var(&appendEndTimeFlag, "endtime", 0, "POSIX seconds the command finished at")
	flags.StringVar(&appendCommandFlag, "command", "", "The command line that ran")
	flags.StringVar(&appendFolderFlag, "folder", "", "Working directory the command ran in")
	flags.Int64Var(&appendExitCodeFlag, "exit-code", 0, "Exit code the command returned")
	flags.StringVar(&appendMachineFlag, "machine", "", "Identifier of the recording machine")
	flags.StringVar(&appendSessionFlag, "session", "", "Identifier of the recording shell session")
	for _, name := range []string{"starttime", "endtime", "command", "folder", "exit-code", "machine", "session"} {
		_ = cmd.MarkFlagRequired(name)
	}
	parent.AddCommand(cmd)
}

func runAppendEvent(cmd *cobra.Command, args []string) error {
	path, err := resolveLocalPath(filepath.Join(config.BaseDir(), source.LocalFile))
	if err != nil {
		return err
	}

	timestamp := time.Unix(0, int64(appendStartTimeFlag*float64(time.Second))).UTC()
	duration := appendEndTimeFlag - appendStartTimeFlag

	event := history.Event{
		Timestamp: timestamp,
		Command:   appendCommandFlag,
		Duration:  history.Float64(duration),
		ExitCode:  history.Int64(appendExitCodeFlag),
		Folder:    history.String(appendFolderFlag),
		Machine:   history.String(appendMachineFlag),
		Session:   history.String(appendSessionFlag),
	}

	return oshlog.Insert(path, event, lockTimeout())
}

// resolveLocalPath follows one level of symlink for path without
// requiring the target to already exist, since local.osh commonly
// points at an active/ file that is created lazily on first append.
func resolveLocalPath(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}
