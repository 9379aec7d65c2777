package tag

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func printableASCII() string {
	b := make([]byte, 0, ASCIIMax-ASCIIMin+1)
	for c := ASCIIMin; c <= ASCIIMax; c++ {
		b = append(b, byte(c))
	}
	return string(b)
}

func TestEncodeRune_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		in   rune
		want rune
	}{
		{name: "space", in: ' ', want: 0xE0020},
		{name: "bang", in: '!', want: 0xE0021},
		{name: "tilde", in: '~', want: 0xE007E},
		{name: "below range", in: 0x1F, want: 0x1F},
		{name: "newline", in: '\n', want: '\n'},
		{name: "DEL", in: 0x7F, want: 0x7F},
		{name: "latin small e acute", in: 'é', want: 'é'},
		{name: "already tagged", in: 0xE0041, want: 0xE0041},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EncodeRune(tt.in))
		})
	}
}

func TestDecodeRune_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		in   rune
		want rune
	}{
		{name: "tag space", in: 0xE0020, want: ' '},
		{name: "tag tilde", in: 0xE007E, want: '~'},
		{name: "language tag", in: 0xE0001, want: 0xE0001},
		{name: "tag below space", in: 0xE001F, want: 0xE001F},
		{name: "cancel tag", in: 0xE007F, want: 0xE007F},
		{name: "plain ascii", in: 'A', want: 'A'},
		{name: "max code point", in: utf8.MaxRune, want: utf8.MaxRune},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeRune(tt.in))
		})
	}
}

func TestEncode_EveryPrintableLandsInTagRange(t *testing.T) {
	for _, r := range Encode(printableASCII()) {
		require.True(t, IsTag(r), "U+%04X outside tag range", r)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"a",
		"Hello, World!",
		printableASCII(),
		"{\"key\": [1, 2, 3]} ~`|\\",
	} {
		require.Equal(t, s, Decode(Encode(s)))
	}
}

func TestIdentityOutsideRange(t *testing.T) {
	noASCII := "\t\n\r\x00\x7fé日本語🙂"
	require.Equal(t, noASCII, Encode(noASCII))

	noTags := "plain text, with ünïcödé and emoji 🙂\n"
	require.Equal(t, noTags, Decode(noTags))
	require.Equal(t, Decode(noTags), Decode(Decode(noTags)))
}

func TestEncode_AlreadyTaggedIsNoop(t *testing.T) {
	hidden := Encode("secret")
	require.Equal(t, hidden, Encode(hidden))
}

func TestLengthPreservedInCodePoints(t *testing.T) {
	for _, s := range []string{"", "abc", "héllo wörld", "\x01\x02 tab\there", "日本 go 🙂"} {
		require.Equal(t, utf8.RuneCountInString(s), utf8.RuneCountInString(Encode(s)))
		require.Equal(t, utf8.RuneCountInString(s), utf8.RuneCountInString(Decode(Encode(s))))
	}
}

func TestEncode_PassesThroughNonASCII(t *testing.T) {
	got := []rune(Encode("héllo"))
	require.Equal(t, []rune{0xE0068, 'é', 0xE006C, 0xE006C, 0xE006F}, got)
}

func TestDecode_RevealsAppendedPayload(t *testing.T) {
	s := "Hello " + Encode("Hi")
	require.Equal(t, "Hello Hi", Decode(s))
	require.Equal(t, s, Hide("Hello ", "Hi"))
}

func TestInvalidUTF8PassesThrough(t *testing.T) {
	in := "a\xffb\xe0\x80"
	got := Encode(in)
	require.Equal(t, string(EncodeRune('a'))+"\xff"+string(EncodeRune('b'))+"\xe0\x80", got)
	require.Equal(t, in, Decode(got))
	require.Equal(t, []byte(got), EncodeBytes([]byte(in)))
	require.Equal(t, []byte(in), DecodeBytes([]byte(got)))
}

func TestHiddenAndVisible(t *testing.T) {
	s := "Hello " + Encode("Hi") + " there" + Encode("!")
	require.True(t, Contains(s))
	require.False(t, Contains("Hello"))
	require.Equal(t, "Hi!", Hidden(s))
	require.Equal(t, "Hello  there", Visible(s))
}
