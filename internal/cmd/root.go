// Package cmd wires the cobra CLI surface: one subcommand per
// operation, each a thin wrapper around an internal package.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dsmmcken/osh/internal/config"
	"github.com/dsmmcken/osh/internal/output"
	"github.com/dsmmcken/osh/internal/query"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	verboseFlag     bool
	quietFlag       bool
	oshHomeFlag     string
	lockTimeoutFlag int
)

// resolvedLockTimeout is the advisory-lock wait bound every subcommand
// threads into oshlog/maintain/source calls, set once in
// PersistentPreRunE from config.ResolveLockTimeout. At package load it
// is initialized from config.ResolveLockTimeout(0, 0) (config.toml or
// the built-in fallback) so tests that construct commands without
// calling Execute still get a sane timeout.
var resolvedLockTimeout = config.ResolveLockTimeout(0, 0)

// lockTimeout returns the resolved advisory-lock wait bound.
func lockTimeout() time.Duration {
	return resolvedLockTimeout
}

func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	addSearchCommand(cmd)
	addListCommand(cmd)
	addAppendEventCommand(cmd)
	addConvertCommands(cmd)
	addCheckCommand(cmd)
	addReportCommand(cmd)
	return cmd
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "osh",
		Short:         "Shell command history recorder and query tool",
		Long:          "osh — records shell command history to a local, append-only log and serves fuzzy-finder queries over it.",
		Version:       fmt.Sprintf("osh v%s", Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verboseFlag && quietFlag {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			output.SetFlags(verboseFlag, quietFlag)
			config.SetBaseDir(oshHomeFlag)

			envLockTimeout := 0
			if v := os.Getenv("OSH_LOCK_TIMEOUT_SECONDS"); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					envLockTimeout = n
				}
			}
			resolvedLockTimeout = config.ResolveLockTimeout(lockTimeoutFlag, envLockTimeout)
			query.SetHomeDir(config.ResolveHomePrefix())
			return nil
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pflags := rootCmd.PersistentFlags()
	pflags.BoolVarP(&verboseFlag, "verbose", "v", false, "Extra detail to stderr")
	pflags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")
	pflags.StringVar(&oshHomeFlag, "osh-home", "", "Override base directory (default: $OSH_HOME or ~/.osh)")
	pflags.IntVar(&lockTimeoutFlag, "lock-timeout", 0, "Advisory lock wait bound in seconds (default: config.toml lock_timeout_seconds, or 5s)")

	if v := os.Getenv("OSH_HOME"); v != "" && oshHomeFlag == "" {
		oshHomeFlag = v
	}

	return rootCmd
}

func Execute() error {
	cmd := NewRootCmd()
	return cmd.Execute()
}
