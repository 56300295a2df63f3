package crossway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTranscript(t *testing.T) {
	moves := []Move{
		Placement(0, Coord{Row: 3, Col: 3}),
		Swap(1),
		Placement(0, Coord{Row: 0, Col: 0}),
		Resign(1),
	}
	want := "config: size=7 players=2 variant=standard\n" +
		"moves:\n" +
		"P0 3,3\n" +
		"P1 swap\n" +
		"P0 0,0\n" +
		"P1 resign\n"
	assert.Equal(t, want, EncodeTranscript(DefaultConfig(), moves))
}

func TestTranscriptRoundTrip(t *testing.T) {
	pos := mustStartingPosition(t, DefaultConfig())
	moves := []Move{
		Placement(0, Coord{Row: 3, Col: 3}),
		Swap(1),
		Placement(0, Coord{Row: 5, Col: 5}),
		Skip(1),
		Placement(0, Coord{Row: 2, Col: 2}),
	}
	for _, move := range moves {
		pos = mustApply(t, pos, move)
	}

	decoded, err := DecodeTranscript(EncodeTranscript(DefaultConfig(), moves))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), decoded.Config)
	assert.Equal(t, moves, decoded.Moves)
	assert.True(t, decoded.Final.Equal(pos))
}

func TestDecodeTranscriptEmptyMoveList(t *testing.T) {
	decoded, err := DecodeTranscript("config: size=5 players=3 variant=standard\nmoves:\n")
	require.NoError(t, err)
	assert.Empty(t, decoded.Moves)
	assert.Equal(t, 0, decoded.Final.MoveCount())
	assert.Equal(t, 3, decoded.Final.Config().Players)
}

func TestDecodeTranscriptDuplicateCell(t *testing.T) {
	input := "config: size=7 players=2 variant=standard\n" +
		"moves:\n" +
		"P0 3,3\n" +
		"P1 2,2\n" +
		"P0 3,3\n"
	_, err := DecodeTranscript(input)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, DuplicateCell, parseErr.Kind)
	assert.Equal(t, 5, parseErr.Line)

	// The underlying rule violation stays reachable through the chain.
	var violation *RuleViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, CellOccupied, violation.Kind)
}

func TestDecodeTranscriptRejects(t *testing.T) {
	cases := map[string]struct {
		input string
		kind  ParseErrorKind
	}{
		"empty":            {"", UnexpectedToken},
		"no header":        {"moves:\nP0 0,0", UnexpectedToken},
		"bad header field": {"config: size=7 rounds=2 variant=standard\nmoves:", UnexpectedToken},
		"missing field":    {"config: size=7 players=2\nmoves:", UnexpectedToken},
		"size range":       {"config: size=0 players=2 variant=standard\nmoves:", OutOfRange},
		"players range":    {"config: size=7 players=1 variant=standard\nmoves:", OutOfRange},
		"players cap":      {"config: size=7 players=11 variant=standard\nmoves:", OutOfRange},
		"unknown variant":  {"config: size=7 players=2 variant=torus\nmoves:", UnsupportedVariant},
		"no moves marker":  {"config: size=7 players=2 variant=standard\nhistory:", UnexpectedToken},
		"bad move token":   {"config: size=7 players=2 variant=standard\nmoves:\nzero 3,3", UnexpectedToken},
		"bad action":       {"config: size=7 players=2 variant=standard\nmoves:\nP0 castle", UnexpectedToken},
		"bad coordinate":   {"config: size=7 players=2 variant=standard\nmoves:\nP0 a,b", UnexpectedToken},
		"player range":     {"config: size=7 players=2 variant=standard\nmoves:\nP5 3,3", OutOfRange},
		"out of bounds":    {"config: size=7 players=2 variant=standard\nmoves:\nP0 9,9", OutOfRange},
		"out of turn":      {"config: size=7 players=2 variant=standard\nmoves:\nP1 3,3", InconsistentStatus},
		"early swap":       {"config: size=7 players=2 variant=standard\nmoves:\nP0 swap", InconsistentStatus},
		"move after end":   {"config: size=7 players=2 variant=standard\nmoves:\nP0 3,3\nP1 resign\nP0 0,0", InconsistentStatus},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTranscript(tc.input)
			assert.Equal(t, tc.kind, parseKind(t, err), "input %q", tc.input)
		})
	}
}

func TestDecodeTranscriptReplaysWin(t *testing.T) {
	input := "config: size=3 players=2 variant=standard\n" +
		"moves:\n" +
		"P0 0,0\nP1 0,2\nP0 1,0\nP1 1,2\nP0 2,0\n"
	decoded, err := DecodeTranscript(input)
	require.NoError(t, err)
	assert.Equal(t, Status{Kind: Won, Player: 0}, decoded.Final.Status())
}

func FuzzDecodeTranscript(f *testing.F) {
	seeds := []string{
		"",
		"config: size=7 players=2 variant=standard\nmoves:\n",
		"config: size=7 players=2 variant=standard\nmoves:\nP0 3,3\nP1 swap\nP0 resign\n",
		"config: size=7 players=2 variant=standard\nmoves:\nP0 3,3\nP1 skip\n",
		"config: size=3 players=2 variant=standard\nmoves:\nP0 0,0\nP1 0,2\nP0 1,0\nP1 1,2\nP0 2,0\n",
		"config: size=0 players=2 variant=standard\nmoves:",
		"config: size=7 players=2 variant=torus\nmoves:",
		"config: size=7 players=2 variant=standard\nmoves:\nP0 3,3\nP1 3,3\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		transcript, err := DecodeTranscript(input)
		if err != nil {
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("DecodeTranscript(%q) returned non-ParseError %v", input, err)
			}
			return
		}
		// Accepted transcripts re-encode to a record that replays to the
		// same terminal position.
		again, err := DecodeTranscript(EncodeTranscript(transcript.Config, transcript.Moves))
		if err != nil {
			t.Fatalf("re-decoding accepted transcript failed: %v", err)
		}
		if !again.Final.Equal(transcript.Final) {
			t.Fatalf("round trip changed final position:\n%s", EncodePosition(transcript.Final))
		}
	})
}
