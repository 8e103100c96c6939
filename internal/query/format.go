package query

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// RecordSeparator and FieldSeparator are the delimiters a
// null-delimited fuzzy-finder expects: records end in a NUL byte, and
// a record's four fields are joined by US (0x1F).
const (
	RecordSeparator = "\x00"
	FieldSeparator  = "\x1f"
)

// newlineMarker replaces embedded newlines in the single-line command
// field so a multi-line command still reads as one finder record.
const newlineMarker = "␤" // SYMBOL FOR NEWLINE

var homeDir = resolveHomeDir()

func resolveHomeDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

// SetHomeDir overrides the home-directory prefix PreviewEvent
// substitutes with "~". Called once from the CLI's PersistentPreRunE
// with the resolved config.toml home_prefix (falling back to
// os.UserHomeDir, the package's init-time default, if unset).
func SetHomeDir(dir string) {
	homeDir = dir
}

// prettyFolder replaces a leading home-directory path with "~".
func prettyFolder(folder string) string {
	if homeDir != "" && strings.HasPrefix(folder, homeDir) {
		return "~" + folder[len(homeDir):]
	}
	return folder
}

// PreviewEvent renders the multi-line preview for a native or legacy
// history.Event, formatting its timestamp in loc.
func PreviewEvent(e history.Event, loc *time.Location) string {
	ts := e.Timestamp.In(loc)
	if e.Duration != nil && e.ExitCode != nil && e.Folder != nil && e.Machine != nil {
		dur := HumanDuration(time.Duration(*e.Duration * float64(time.Second)))
		folder := prettyFolder(*e.Folder)
		return strings.Join([]string{
			fmt.Sprintf("[returned %d after %s at %s]", *e.ExitCode, dur, ts),
			fmt.Sprintf("[ran in %s on %s]", folder, *e.Machine),
			"",
			e.Command,
		}, "\n")
	}
	return strings.Join([]string{
		fmt.Sprintf("ran on %s", ts),
		"",
		e.Command,
	}, "\n")
}

// PreviewBag renders the multi-line preview for a BaggedEvent.
func PreviewBag(b BaggedEvent, loc *time.Location) string {
	ts := b.Timestamp.In(loc)
	return strings.Join([]string{
		fmt.Sprintf("[ran %d times, most recently at %s]", b.Count, ts),
		fmt.Sprintf("[%d%% success, %d%% failure, %d%% unknown]",
			round(100*b.SuccessRatio), round(100*b.FailureRatio), round(100*b.UnknownRatio)),
		"",
		b.Command,
	}, "\n")
}

// Entry builds one NUL-delimited finder record: base64(command),
// base64(preview), a right-aligned "[N ago]" column, then the command
// with embedded newlines collapsed to a single line. now is the
// reference instant "ago" is measured against.
func Entry(command, preview string, timestamp, now time.Time) string {
	encCmd := base64.StdEncoding.EncodeToString([]byte(command))
	encPreview := base64.StdEncoding.EncodeToString([]byte(preview))
	ago := HumanDuration(now.Sub(timestamp))
	singleLine := strings.ReplaceAll(command, "\n", newlineMarker)
	return strings.Join([]string{
		encCmd,
		encPreview,
		fmt.Sprintf("[%3s ago] ", ago),
		singleLine,
	}, FieldSeparator)
}

// EntryForEvent formats a native/legacy event as a finder record.
func EntryForEvent(e history.Event, loc *time.Location, now time.Time) string {
	return Entry(e.Command, PreviewEvent(e, loc), e.Timestamp, now)
}

// EntryForBag formats a bagged event as a finder record.
func EntryForBag(b BaggedEvent, loc *time.Location, now time.Time) string {
	return Entry(b.Command, PreviewBag(b, loc), b.Timestamp, now)
}
