package legacy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dsmmcken/osh/internal/history"
)

// oshLegacyEntry is the pre-release JSON-array record shape. Fields
// are read generically because two timestamp resolutions occur in the
// wild (integer seconds and microseconds) and "session" is absent on
// imported-zsh rows, which this reader deliberately skips: the raw
// .zsh_history archive alongside it already covers those commands.
type oshLegacyEntry struct {
	Timestamp string          `json:"timestamp"`
	Command   string          `json:"command"`
	Duration  json.RawMessage `json:"duration"`
	ExitCode  json.RawMessage `json:"exit_code"`
	Folder    *string         `json:"folder"`
	Machine   *string         `json:"machine"`
	Session   *string         `json:"session"`
}

// ReadOshLegacy parses a ".osh_legacy" pre-release JSON array into
// Events, newest-first (the file is stored oldest-first, so the
// result is simply the reverse of the array order).
func ReadOshLegacy(path string) ([]history.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("legacy: reading %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: not a JSON array: %v", ErrParse, path, err)
	}

	var events []history.Event
	for i := len(raw) - 1; i >= 0; i-- {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw[i], &probe); err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", ErrParse, path, i, err)
		}
		if _, hasSession := probe["session"]; !hasSession {
			continue // imported zsh row; the raw .zsh_history covers it
		}

		var entry oshLegacyEntry
		if err := json.Unmarshal(raw[i], &entry); err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", ErrParse, path, i, err)
		}

		ts, err := parseTimestamp(entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: bad timestamp %q: %v", ErrParse, path, i, entry.Timestamp, err)
		}

		duration, err := numberPtr(entry.Duration)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: bad duration: %v", ErrParse, path, i, err)
		}
		exitCode, err := intPtr(entry.ExitCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: bad exit_code: %v", ErrParse, path, i, err)
		}

		events = append(events, history.Event{
			Timestamp: ts.UTC(),
			Command:   entry.Command,
			Duration:  duration,
			ExitCode:  exitCode,
			Folder:    entry.Folder,
			Machine:   entry.Machine,
			Session:   entry.Session,
		})
	}
	return events, nil
}

func numberPtr(raw json.RawMessage) (*float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func intPtr(raw json.RawMessage) (*int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
