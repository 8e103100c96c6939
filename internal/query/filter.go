// Package query implements the read-side transformations applied to a
// merged event stream: session/folder filtering, command bagging, and
// the record formats printed to stdout.
package query

import "github.com/dsmmcken/osh/internal/history"

// Mode selects how Filter reshapes the stream.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeSession Mode = "session"
	ModeFolder  Mode = "folder"
	ModeBag     Mode = "bag"
)

// Keep reports whether e passes mode's filter. For ModeSession and
// ModeFolder, an empty match value leaves the stream unfiltered
// (mirroring the original behavior where the filter is only applied
// if a value was given). ModeAll and ModeBag keep everything; bagging
// aggregates downstream rather than filtering here.
func Keep(e history.Event, mode Mode, session, folder string) bool {
	switch mode {
	case ModeSession:
		return session == "" || (e.Session != nil && *e.Session == session)
	case ModeFolder:
		return folder == "" || (e.Folder != nil && *e.Folder == folder)
	default:
		return true
	}
}

// Filter applies mode to an already-materialized slice of events.
// Streaming callers use Keep directly so they never have to hold the
// full history in memory.
func Filter(events []history.Event, mode Mode, session, folder string) []history.Event {
	out := make([]history.Event, 0, len(events))
	for _, e := range events {
		if Keep(e, mode, session, folder) {
			out = append(out, e)
		}
	}
	return out
}
