package crossway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseKind(t *testing.T, err error) ParseErrorKind {
	t.Helper()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	return parseErr.Kind
}

func TestEncodePositionStarting(t *testing.T) {
	pos := mustStartingPosition(t, Config{Size: 3, Players: 2, Variant: VariantStandard})
	want := "size=3\n" +
		"grid=...\n" +
		"...\n" +
		"...\n" +
		"turn=0\n" +
		"status=InProgress\n"
	assert.Equal(t, want, EncodePosition(pos))
}

func TestEncodePositionAfterMoves(t *testing.T) {
	pos := mustStartingPosition(t, Config{Size: 3, Players: 2, Variant: VariantStandard})
	pos = mustApply(t, pos, Placement(0, Coord{Row: 1, Col: 1}))
	pos = mustApply(t, pos, Placement(1, Coord{Row: 0, Col: 2}))

	want := "size=3\n" +
		"grid=..1\n" +
		".0.\n" +
		"...\n" +
		"turn=0\n" +
		"status=InProgress\n"
	assert.Equal(t, want, EncodePosition(pos))
}

func TestPositionRoundTrip(t *testing.T) {
	pos := mustStartingPosition(t, DefaultConfig())
	pos = mustApply(t, pos, Placement(0, Coord{Row: 3, Col: 3}))
	pos = mustApply(t, pos, Swap(1))
	pos = mustApply(t, pos, Placement(0, Coord{Row: 0, Col: 0}))
	pos = mustApply(t, pos, Placement(1, Coord{Row: 6, Col: 6}))

	decoded, err := DecodePosition(EncodePosition(pos))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(pos), "decoded position differs:\n%s", EncodePosition(decoded))
	assert.Equal(t, 3, decoded.MoveCount())
}

func TestDecodedOpeningSnapshotKeepsSwap(t *testing.T) {
	pos := mustStartingPosition(t, DefaultConfig())
	pos = mustApply(t, pos, Placement(0, Coord{Row: 3, Col: 3}))
	pos = mustApply(t, pos, Swap(1))

	// A one-stone snapshot reconstructs as move count one, whether or
	// not the opening was swapped, so the swap window is open again on
	// the resumed position.
	decoded, err := DecodePosition(EncodePosition(pos))
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.MoveCount())
	_, err = decoded.Apply(Swap(decoded.Turn()))
	assert.NoError(t, err)
}

func TestPositionRoundTripWon(t *testing.T) {
	pos := mustStartingPosition(t, Config{Size: 3, Players: 2, Variant: VariantStandard})
	for row := 0; row < 3; row++ {
		pos = mustApply(t, pos, Placement(0, Coord{Row: row, Col: 0}))
		if row < 2 {
			pos = mustApply(t, pos, Placement(1, Coord{Row: row, Col: 2}))
		}
	}
	require.Equal(t, Status{Kind: Won, Player: 0}, pos.Status())

	decoded, err := DecodePosition(EncodePosition(pos))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(pos))
}

func TestDecodePositionInfersPlayers(t *testing.T) {
	decoded, err := DecodePosition("size=3\ngrid=..2\n.0.\n1..\nturn=3\nstatus=InProgress\n")
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Config().Players)
	assert.Equal(t, PlayerID(3), decoded.Turn())
}

func TestDecodePositionRejects(t *testing.T) {
	cases := map[string]struct {
		input string
		kind  ParseErrorKind
	}{
		"empty":            {"", UnexpectedToken},
		"zero size":        {"size=0\n...", OutOfRange},
		"negative size":    {"size=-4\ngrid=\nturn=0\nstatus=InProgress", OutOfRange},
		"oversized":        {"size=300\ngrid=..\nturn=0\nstatus=InProgress", OutOfRange},
		"size not int":     {"size=seven\ngrid=.\nturn=0\nstatus=InProgress", UnexpectedToken},
		"missing prefix":   {"width=3\ngrid=...\n...\n...\nturn=0\nstatus=InProgress", UnexpectedToken},
		"too few lines":    {"size=3\ngrid=...\n...\nturn=0\nstatus=InProgress", UnexpectedToken},
		"too many lines":   {"size=1\ngrid=.\nextra\nturn=0\nstatus=InProgress", UnexpectedToken},
		"no grid prefix":   {"size=1\n.\nturn=0\nstatus=InProgress", UnexpectedToken},
		"short row":        {"size=3\ngrid=..\n...\n...\nturn=0\nstatus=InProgress", UnexpectedToken},
		"bad cell":         {"size=3\ngrid=..X\n...\n...\nturn=0\nstatus=InProgress", UnexpectedToken},
		"bad turn":         {"size=1\ngrid=.\nturn=x\nstatus=InProgress", UnexpectedToken},
		"turn range":       {"size=1\ngrid=.\nturn=99\nstatus=InProgress", OutOfRange},
		"negative turn":    {"size=1\ngrid=.\nturn=-1\nstatus=InProgress", OutOfRange},
		"bad status":       {"size=1\ngrid=.\nturn=0\nstatus=Finished", UnexpectedToken},
		"bad status kind":  {"size=1\ngrid=.\nturn=0\nstatus=Drawn:0", UnexpectedToken},
		"status player":    {"size=1\ngrid=.\nturn=0\nstatus=Won:12", OutOfRange},
		"phantom winner":   {"size=3\ngrid=...\n...\n...\nturn=0\nstatus=Won:0", InconsistentStatus},
		"unnoticed winner": {"size=1\ngrid=0\nturn=1\nstatus=InProgress", InconsistentStatus},
		"winner resigned":  {"size=1\ngrid=0\nturn=1\nstatus=Resigned:0", InconsistentStatus},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePosition(tc.input)
			assert.Equal(t, tc.kind, parseKind(t, err), "input %q", tc.input)
		})
	}
}

func TestDecodePositionCRLF(t *testing.T) {
	decoded, err := DecodePosition("size=2\r\ngrid=..\r\n..\r\nturn=1\r\nstatus=InProgress\r\n")
	require.NoError(t, err)
	assert.Equal(t, PlayerID(1), decoded.Turn())
}

func TestParseErrorReportsLine(t *testing.T) {
	_, err := DecodePosition("size=3\ngrid=...\n..!\n...\nturn=0\nstatus=InProgress")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
	assert.Contains(t, parseErr.Error(), "line 3")
}

func FuzzDecodePosition(f *testing.F) {
	seeds := []string{
		"",
		"size=3\ngrid=...\n...\n...\nturn=0\nstatus=InProgress\n",
		"size=1\ngrid=0\nturn=1\nstatus=Won:0\n",
		"size=0\n...",
		"size=3\ngrid=..2\n.0.\n1..\nturn=3\nstatus=InProgress\n",
		"size=2\ngrid=01\n10\nturn=0\nstatus=Resigned:1\n",
		"size=255\ngrid=.\nturn=0\nstatus=InProgress",
		"size=3\r\ngrid=...\r\n...\r\n...\r\nturn=0\r\nstatus=InProgress\r\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		pos, err := DecodePosition(input)
		if err != nil {
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("DecodePosition(%q) returned non-ParseError %v", input, err)
			}
			return
		}
		// Anything the decoder accepts must survive a re-encode cycle.
		again, err := DecodePosition(EncodePosition(pos))
		if err != nil {
			t.Fatalf("re-decoding %q failed: %v", EncodePosition(pos), err)
		}
		if !again.Equal(pos) {
			t.Fatalf("round trip changed position:\n%s", EncodePosition(pos))
		}
	})
}

func BenchmarkDecodePosition(b *testing.B) {
	pos := mustStartingPositionB(b, Config{Size: 19, Players: 2, Variant: VariantStandard})
	input := EncodePosition(pos)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodePosition(input); err != nil {
			b.Fatal(err)
		}
	}
}

func mustStartingPositionB(b *testing.B, config Config) *Position {
	b.Helper()
	pos, err := StartingPosition(config)
	if err != nil {
		b.Fatal(err)
	}
	return pos
}
