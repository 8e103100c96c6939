// Package legacy parses the three read-only historical formats this
// system still understands: zsh's own history file, and the two
// pre-release shapes this project itself used before the ".osh"
// binary format.
package legacy

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// ErrParse is returned for malformed legacy-format content: a
// ".zsh_history" line that does not match the expected grammar, or an
// ".osh_legacy" / old-".osh" file with an unexpected shape.
var ErrParse = fmt.Errorf("legacy: parse error")

var zshLinePattern = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

// ReadZsh parses a ".zsh_history" file into Events, newest-first. Zsh
// history files are not guaranteed to be sorted, so the result is
// explicitly sorted by timestamp descending. Duration is read but
// never trusted (many zsh builds always record 0), so it is dropped;
// only Timestamp and Command are populated, matching the fields a zsh
// import can actually provide.
func ReadZsh(path string) ([]history.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("legacy: reading %s: %w", path, err)
	}

	lines := splitLines(string(data))
	var events []history.Event

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		m := zshLinePattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: %s: line %d: %q", ErrParse, path, i+1, line)
		}
		sec, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: line %d: bad timestamp: %v", ErrParse, path, i+1, err)
		}
		command := m[3]
		for len(command) > 0 && command[len(command)-1] == '\\' {
			i++
			if i >= len(lines) {
				return nil, fmt.Errorf("%w: %s: unterminated continuation at eof", ErrParse, path)
			}
			command = command[:len(command)-1] + "\n" + lines[i]
		}
		events = append(events, history.Event{
			Timestamp: time.Unix(sec, 0).UTC(),
			Command:   command,
		})
	}

	sort.SliceStable(events, func(a, b int) bool {
		return events[a].Timestamp.After(events[b].Timestamp)
	})
	return events, nil
}

// splitLines mirrors the original reader's "split on \n, drop the
// trailing empty element from the final newline".
func splitLines(content string) []string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
