package legacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// Format identifies one of the supported legacy formats, dispatched
// once at discovery time by file extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatZsh
	FormatOshLegacy
	FormatOldOsh
)

// FormatForPath classifies path by its suffix, mirroring the
// extensions find_sources/read_events_from_path dispatch on.
func FormatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".zsh_history"):
		return FormatZsh
	case strings.HasSuffix(path, ".osh_legacy"):
		return FormatOshLegacy
	default:
		return FormatUnknown
	}
}

// parseTimestamp accepts the ISO-8601 shapes that occur in the
// pre-release JSON formats: with or without fractional seconds, with
// an offset or bare (bare timestamps are taken as UTC). Both
// integer-second and microsecond resolutions occur in the wild.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

// Read dispatches to the reader matching format.
func Read(format Format, path string) ([]history.Event, error) {
	switch format {
	case FormatZsh:
		return ReadZsh(path)
	case FormatOshLegacy:
		return ReadOshLegacy(path)
	case FormatOldOsh:
		return ReadOldOsh(path)
	default:
		return nil, fmt.Errorf("legacy: unsupported format for %s", path)
	}
}
