// Package history defines the Event value recorded for every shell command
// and its self-delimiting binary framing.
package history

import (
	"errors"
	"time"
)

// ErrOversizedEvent is returned when an encoded Event would exceed the
// 16-bit frame-size limit. Callers treat this as a silent drop, never a
// fatal error.
var ErrOversizedEvent = errors.New("history: event exceeds maximum frame size")

// ErrCorruptFrame is returned when a payload does not decode as a valid
// v1 record, or when a frame's trailing size word does not fit within
// the bytes available.
var ErrCorruptFrame = errors.New("history: corrupt frame")

// MaxPayloadSize is the largest payload a single frame can carry: the
// size word is a 2-byte big-endian unsigned integer.
const MaxPayloadSize = 1<<16 - 1

// Event is the sole domain entity: one recorded shell command plus its
// optional metadata. Optional fields are jointly present for native
// records; legacy zsh imports carry only Timestamp and Command.
type Event struct {
	Timestamp time.Time // UTC, sub-second precision; ordering key

	Command string // may contain newlines and control bytes

	Duration *float64 // seconds, non-negative; nil if unknown
	ExitCode *int64   // nil if unknown; 0 == success
	Folder   *string
	Machine  *string
	Session  *string
}

// Equal reports structural equality over all fields, as required by
// the codec round-trip law (decode(encode(e)) == e).
func (e Event) Equal(other Event) bool {
	if !e.Timestamp.Equal(other.Timestamp) || e.Command != other.Command {
		return false
	}
	if !equalFloatPtr(e.Duration, other.Duration) {
		return false
	}
	if !equalIntPtr(e.ExitCode, other.ExitCode) {
		return false
	}
	if !equalStringPtr(e.Folder, other.Folder) {
		return false
	}
	if !equalStringPtr(e.Machine, other.Machine) {
		return false
	}
	if !equalStringPtr(e.Session, other.Session) {
		return false
	}
	return true
}

func equalFloatPtr(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalIntPtr(a, b *int64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalStringPtr(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// Float64 returns a pointer to v, for building Events with optional fields.
func Float64(v float64) *float64 { return &v }

// Int64 returns a pointer to v, for building Events with optional fields.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v, for building Events with optional fields.
func String(v string) *string { return &v }
