package history

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// wireVersion is the tag value for the only frame variant this codec
// understands. A future wider-size variant would get its own tag;
// "v1" keeps the 16-bit frame limit forever.
const wireVersion = "v1"

// wireEvent is the on-disk shape: a tagged map, with the
// discriminating "version" tag leading a fixed field order.
type wireEvent struct {
	Version   string    `msgpack:"version"`
	Timestamp time.Time `msgpack:"timestamp"`
	Command   string    `msgpack:"command"`
	Duration  *float64  `msgpack:"duration"`
	ExitCode  *int64    `msgpack:"exit_code"`
	Folder    *string   `msgpack:"folder"`
	Machine   *string   `msgpack:"machine"`
	Session   *string   `msgpack:"session"`
}

// Encode produces the msgpack payload for e. It fails with
// ErrOversizedEvent when the payload would exceed MaxPayloadSize; the
// caller treats the event as dropped rather than as a hard failure.
func Encode(e Event) ([]byte, error) {
	w := wireEvent{
		Version:   wireVersion,
		Timestamp: e.Timestamp.UTC(),
		Command:   e.Command,
		Duration:  e.Duration,
		ExitCode:  e.ExitCode,
		Folder:    e.Folder,
		Machine:   e.Machine,
		Session:   e.Session,
	}
	data, err := msgpack.Marshal(&w)
	if err != nil {
		return nil, fmt.Errorf("history: encoding event: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return nil, ErrOversizedEvent
	}
	return data, nil
}

// Decode parses a payload previously produced by Encode. It fails with
// ErrCorruptFrame if the bytes are not a valid v1 record.
func Decode(payload []byte) (Event, error) {
	var w wireEvent
	if err := msgpack.Unmarshal(payload, &w); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
	}
	if w.Version != wireVersion {
		return Event{}, fmt.Errorf("%w: unknown version tag %q", ErrCorruptFrame, w.Version)
	}
	return Event{
		Timestamp: w.Timestamp.UTC(),
		Command:   w.Command,
		Duration:  w.Duration,
		ExitCode:  w.ExitCode,
		Folder:    w.Folder,
		Machine:   w.Machine,
		Session:   w.Session,
	}, nil
}
