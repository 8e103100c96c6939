// Package merge implements a k-way merge reader: given N
// reverse-scanning sources, each individually ordered newest-first, it
// produces a single newest-first stream via a lazy heap merge.
package merge

import (
	"container/heap"

	"github.com/dsmmcken/osh/internal/history"
)

// Source is anything that can be pulled from in reverse order, the
// shape both oshlog.ReverseIter and legacy.Read's slice wrapper
// satisfy.
type Source interface {
	Next() bool
	Event() history.Event
	Err() error
	Close() error
}

type heapItem struct {
	event history.Event
	src   Source
	idx   int
}

type itemHeap []*heapItem

func (h itemHeap) Len() int { return len(h) }

// Less orders by timestamp descending (newest first); ties are broken
// by source index. This is deterministic for a given run but
// arbitrary: callers must not depend on tie order.
func (h itemHeap) Less(i, j int) bool {
	ti, tj := h[i].event.Timestamp, h[j].event.Timestamp
	if ti.Equal(tj) {
		return h[i].idx < h[j].idx
	}
	return ti.After(tj)
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(*heapItem)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge is a lazy pull-iterator over the k-way merge of its sources.
// Each underlying source advances only when its current head is
// chosen, so callers can stop draining early without paying to read
// the full history.
type Merge struct {
	h     itemHeap
	event history.Event
	err   error
}

// New primes the merge by pulling one event from every source. Sources
// that are already exhausted contribute nothing; if a source errors
// out immediately, its error is returned by Err() and Next() returns
// false.
func New(sources []Source) *Merge {
	m := &Merge{}
	m.h = make(itemHeap, 0, len(sources))
	for i, s := range sources {
		if s.Next() {
			heap.Push(&m.h, &heapItem{event: s.Event(), src: s, idx: i})
		} else if err := s.Err(); err != nil {
			m.err = err
		}
	}
	heap.Init(&m.h)
	return m
}

// Next advances to the next event in the merged, newest-first stream.
func (m *Merge) Next() bool {
	if m.err != nil || m.h.Len() == 0 {
		return false
	}
	top := heap.Pop(&m.h).(*heapItem)
	m.event = top.event
	if top.src.Next() {
		heap.Push(&m.h, &heapItem{event: top.src.Event(), src: top.src, idx: top.idx})
	} else if err := top.src.Err(); err != nil {
		m.err = err
		return false
	}
	return true
}

// Event returns the event produced by the most recent call to Next.
func (m *Merge) Event() history.Event { return m.event }

// Err returns the first error encountered by any source.
func (m *Merge) Err() error { return m.err }

// Close releases every remaining source, e.g. on early exit.
func (m *Merge) Close() error {
	var first error
	for _, item := range m.h {
		if err := item.src.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.h = nil
	return first
}
