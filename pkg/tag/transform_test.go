package tag

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestEncoder_MatchesEncode(t *testing.T) {
	for _, s := range []string{"", "Hello, World!", "héllo 日本 🙂", "a\xffb", printableASCII()} {
		got, err := NewEncoder().String(s)
		require.NoError(t, err)
		require.Equal(t, Encode(s), got)

		back, err := NewDecoder().String(got)
		require.NoError(t, err)
		require.Equal(t, Decode(got), back)
	}
}

func TestDecoder_OneByteReads(t *testing.T) {
	// Multi-byte tag characters split across reads must still decode.
	in := "visible " + Encode(strings.Repeat("hidden payload ", 200))
	r := transform.NewReader(iotest.OneByteReader(strings.NewReader(in)), NewDecoder())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, Decode(in), string(out))
}

func TestEncoder_Writer(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, NewEncoder())
	for _, chunk := range []string{"He", "llo \xe6\x97", "\xa5 ~"} {
		_, err := w.Write([]byte(chunk))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.Equal(t, Encode("Hello 日 ~"), buf.String())
}

func TestEncoder_TruncatedTailAtEOF(t *testing.T) {
	got, err := NewEncoder().String("ok\xe6\x97")
	require.NoError(t, err)
	require.Equal(t, Encode("ok")+"\xe6\x97", got)
}
