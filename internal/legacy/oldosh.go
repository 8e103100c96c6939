package legacy

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dsmmcken/osh/internal/history"
)

// oldOshLine is one line of the pre-".osh"-framing JSON-lines format:
// `{"event": {...}}`. Lines without an "event" key are ignored.
type oldOshLine struct {
	Event *oldOshEvent `json:"event"`
}

type oldOshEvent struct {
	Timestamp string  `json:"timestamp"`
	Command   string  `json:"command"`
	Duration  float64 `json:"duration"`
	ExitCode  int64   `json:"exit-code"`
	Folder    string  `json:"folder"`
	Machine   string  `json:"machine"`
	Session   string  `json:"session"`
}

// ReadOldOsh parses the old JSON-lines ".osh" format into Events,
// newest-first (the file is stored oldest-first).
func ReadOldOsh(path string) ([]history.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("legacy: reading %s: %w", path, err)
	}
	defer f.Close()

	var forward []history.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var l oldOshLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("%w: %s: line %d: %v", ErrParse, path, lineNo, err)
		}
		if l.Event == nil {
			continue
		}
		ts, err := parseTimestamp(l.Event.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: line %d: bad timestamp %q: %v", ErrParse, path, lineNo, l.Event.Timestamp, err)
		}
		forward = append(forward, history.Event{
			Timestamp: ts.UTC(),
			Command:   l.Event.Command,
			Duration:  history.Float64(l.Event.Duration),
			ExitCode:  history.Int64(l.Event.ExitCode),
			Folder:    history.String(l.Event.Folder),
			Machine:   history.String(l.Event.Machine),
			Session:   history.String(l.Event.Session),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("legacy: reading %s: %w", path, err)
	}

	events := make([]history.Event, len(forward))
	for i, e := range forward {
		events[len(forward)-1-i] = e
	}
	return events, nil
}
