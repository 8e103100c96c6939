// Package output configures process-wide logging and exit-code
// conventions shared by every subcommand.
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/legacy"
	"github.com/dsmmcken/osh/internal/oshlog"
	"github.com/sirupsen/logrus"
)

// Exit codes returned by main for the failure kinds the CLI surfaces.
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitLockTimeout = 2
	ExitCorrupt     = 3
	ExitParse       = 4
)

// Log is the package-level logger every subcommand writes warnings and
// corruption/skew diagnostics through, instead of fmt.Printf.
var Log = logrus.New()

var (
	flagVerbose bool
	flagQuiet   bool
)

// SetFlags is called by the root command's PersistentPreRunE to
// propagate --verbose/--quiet into the logger's level.
func SetFlags(verbose, quiet bool) {
	flagVerbose = verbose
	flagQuiet = quiet
	switch {
	case quiet:
		Log.SetLevel(logrus.ErrorLevel)
	case verbose:
		Log.SetLevel(logrus.DebugLevel)
	default:
		Log.SetLevel(logrus.WarnLevel)
	}
}

// IsVerbose reports whether --verbose is active.
func IsVerbose() bool { return flagVerbose }

// IsQuiet reports whether --quiet is active.
func IsQuiet() bool { return flagQuiet }

// PrintError writes a one-line fatal error to w, for main's top-level
// error return.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
}

// ExitCodeFor classifies err into one of this package's exit codes, so
// main can propagate the right process exit status for the three
// surfaced error kinds (lock timeout, corrupt frame, legacy parse
// failure) instead of collapsing every failure to ExitError.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, oshlog.ErrLockTimeout):
		return ExitLockTimeout
	case errors.Is(err, history.ErrCorruptFrame):
		return ExitCorrupt
	case errors.Is(err, legacy.ErrParse):
		return ExitParse
	default:
		return ExitError
	}
}
