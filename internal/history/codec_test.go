package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Event{
		{
			Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Command:   "ls -la",
			Duration:  Float64(1.5),
			ExitCode:  Int64(0),
			Folder:    String("/home/user"),
			Machine:   String("laptop"),
			Session:   String("sess-1"),
		},
		{
			// legacy-shaped: only timestamp and command populated
			Timestamp: time.Unix(1700000000, 0).UTC(),
			Command:   "echo one\n two",
		},
	}

	for _, want := range cases {
		data, err := Encode(want)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)

		assert.True(t, want.Equal(got), "round trip mismatch: %+v != %+v", want, got)
	}
}

func TestEncodeOversized(t *testing.T) {
	e := Event{
		Timestamp: time.Now().UTC(),
		Command:   strings.Repeat("x", MaxPayloadSize+1),
	}
	_, err := Encode(e)
	require.ErrorIs(t, err, ErrOversizedEvent)
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte{0xff, 0x00, 0x01})
	require.ErrorIs(t, err, ErrCorruptFrame)
}

func TestDecodeWrongVersionTag(t *testing.T) {
	// A well-formed msgpack payload with any tag other than "v1" must
	// be rejected.
	type otherTag struct {
		Version string `msgpack:"version"`
	}
	bad, err := msgpack.Marshal(&otherTag{Version: "v2"})
	require.NoError(t, err)

	_, err = Decode(bad)
	require.ErrorIs(t, err, ErrCorruptFrame)
}
