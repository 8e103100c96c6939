package query

import (
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// BaggedEvent aggregates every occurrence of one distinct command
// across the whole stream.
type BaggedEvent struct {
	Timestamp    time.Time // most recent occurrence
	Command      string
	Count        int
	SuccessRatio float64
	FailureRatio float64
	UnknownRatio float64
}

// Bag aggregates events by command, emitting one BaggedEvent per
// distinct command in first-seen order.
func Bag(events []history.Event) []BaggedEvent {
	var order []string
	byCommand := make(map[string][]history.Event)

	for _, e := range events {
		if _, ok := byCommand[e.Command]; !ok {
			order = append(order, e.Command)
		}
		byCommand[e.Command] = append(byCommand[e.Command], e)
	}

	result := make([]BaggedEvent, 0, len(order))
	for _, cmd := range order {
		result = append(result, bagFrom(cmd, byCommand[cmd]))
	}
	return result
}

func bagFrom(command string, bag []history.Event) BaggedEvent {
	var success, failure int
	var max time.Time
	for i, e := range bag {
		if e.ExitCode != nil {
			if *e.ExitCode == 0 {
				success++
			} else {
				failure++
			}
		}
		if i == 0 || e.Timestamp.After(max) {
			max = e.Timestamp
		}
	}
	count := len(bag)
	unknown := count - success - failure
	return BaggedEvent{
		Timestamp:    max,
		Command:      command,
		Count:        count,
		SuccessRatio: float64(success) / float64(count),
		FailureRatio: float64(failure) / float64(count),
		UnknownRatio: float64(unknown) / float64(count),
	}
}
