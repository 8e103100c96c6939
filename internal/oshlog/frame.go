package oshlog

import (
	"encoding/binary"
	"fmt"

	"github.com/dsmmcken/osh/internal/history"
)

// sizeWidth is the width of the trailing size word: 2 bytes, big-endian.
const sizeWidth = 2

// encodeFrame returns payload||size for e, or history.ErrOversizedEvent
// if the payload would not fit in a 16-bit size word.
func encodeFrame(e history.Event) ([]byte, error) {
	payload, err := history.Encode(e)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, len(payload)+sizeWidth)
	copy(frame, payload)
	binary.BigEndian.PutUint16(frame[len(payload):], uint16(len(payload)))
	return frame, nil
}

// frameAt decodes the frame whose size word ends at offset `end` within
// data (i.e. the frame occupies data[end-size-2:end]). It returns the
// decoded event and the offset of the start of that frame, or
// history.ErrCorruptFrame if the size word points outside the buffer.
func frameAt(data []byte, end int) (event history.Event, start int, err error) {
	if end < sizeWidth {
		return history.Event{}, 0, fmt.Errorf("%w: size word out of range at offset %d", history.ErrCorruptFrame, end)
	}
	size := int(binary.BigEndian.Uint16(data[end-sizeWidth : end]))
	start = end - sizeWidth - size
	if start < 0 {
		return history.Event{}, 0, fmt.Errorf("%w: frame of size %d would start before offset 0", history.ErrCorruptFrame, size)
	}
	event, err = history.Decode(data[start : end-sizeWidth])
	if err != nil {
		return history.Event{}, 0, err
	}
	return event, start, nil
}
