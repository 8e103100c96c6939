package merge

import "github.com/dsmmcken/osh/internal/history"

// SliceSource adapts an already-materialized, newest-first slice of
// events (as legacy readers return) to the Source interface so it can
// take part in the k-way merge alongside lazy .osh iterators.
type SliceSource struct {
	events []history.Event
	at     int
}

// NewSliceSource wraps a newest-first slice as a Source.
func NewSliceSource(events []history.Event) *SliceSource {
	return &SliceSource{events: events, at: -1}
}

func (s *SliceSource) Next() bool {
	s.at++
	return s.at < len(s.events)
}

func (s *SliceSource) Event() history.Event { return s.events[s.at] }

func (s *SliceSource) Err() error { return nil }

func (s *SliceSource) Close() error { return nil }
