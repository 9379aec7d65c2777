package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	hi := Encode("Hi")
	s := "Hello " + hi + " é" + Encode("!") + "\xff"

	rep := Inspect(s)
	require.Equal(t, "Hello  é\xff", rep.Visible)
	require.Equal(t, "Hi!", rep.Hidden)
	require.Equal(t, 3, rep.TagRunes)
	require.Equal(t, 7, rep.ASCIIRunes)
	require.Equal(t, 1, rep.OtherRunes)
	require.Equal(t, 1, rep.InvalidBytes)

	require.Equal(t, []Span{
		{Start: 6, End: 6 + len(hi)},
		{Start: 6 + len(hi) + 3, End: 6 + len(hi) + 3 + 4},
	}, rep.Spans)
}

func TestInspect_PlainText(t *testing.T) {
	rep := Inspect("nothing to see")
	require.Empty(t, rep.Hidden)
	require.Empty(t, rep.Spans)
	require.Equal(t, 0, rep.TagRunes)
	require.Equal(t, "nothing to see", rep.Visible)
}

func TestInspect_TrailingSpan(t *testing.T) {
	s := "x" + Encode("yz")
	rep := Inspect(s)
	require.Equal(t, []Span{{Start: 1, End: len(s)}}, rep.Spans)
}
