// Package tag maps printable ASCII to the Unicode tag block and back.
//
// Every code point in [U+0020, U+007E] has an invisible twin in
// [U+E0020, U+E007E] at a fixed offset of 0xE0000. Code points outside the
// respective range are passed through unchanged, so mixed visible and hidden
// text survives both directions.
package tag

import (
	"strings"
	"unicode/utf8"
)

const (
	// Offset is the distance between an ASCII character and its tag twin.
	Offset = 0xE0000

	// ASCIIMin and ASCIIMax bound printable ASCII, space through tilde.
	ASCIIMin rune = 0x20
	ASCIIMax rune = 0x7E

	// TagMin and TagMax bound the tag characters that stand for ASCII.
	TagMin = ASCIIMin + Offset
	TagMax = ASCIIMax + Offset
)

// IsASCII reports whether r is printable ASCII, space included.
func IsASCII(r rune) bool {
	return r >= ASCIIMin && r <= ASCIIMax
}

// IsTag reports whether r is the tag twin of a printable ASCII character.
func IsTag(r rune) bool {
	return r >= TagMin && r <= TagMax
}

// EncodeRune returns the tag twin of r, or r if it is not printable ASCII.
func EncodeRune(r rune) rune {
	if IsASCII(r) {
		return r + Offset
	}
	return r
}

// DecodeRune returns the ASCII character r stands for, or r if it is not a
// tag character.
func DecodeRune(r rune) rune {
	if IsTag(r) {
		return r - Offset
	}
	return r
}

// Encode replaces every printable ASCII character in s with its tag twin.
// Bytes that are not valid UTF-8 are copied verbatim.
func Encode(s string) string {
	return mapString(s, EncodeRune)
}

// Decode replaces every tag character in s with the ASCII character it hides.
// Bytes that are not valid UTF-8 are copied verbatim.
func Decode(s string) string {
	return mapString(s, DecodeRune)
}

// EncodeBytes is Encode for UTF-8 byte slices.
func EncodeBytes(b []byte) []byte {
	return mapBytes(b, EncodeRune)
}

// DecodeBytes is Decode for UTF-8 byte slices.
func DecodeBytes(b []byte) []byte {
	return mapBytes(b, DecodeRune)
}

// Hide appends payload to carrier in its invisible form.
func Hide(carrier, payload string) string {
	return carrier + Encode(payload)
}

// Contains reports whether s carries any tag characters.
func Contains(s string) bool {
	return strings.IndexFunc(s, IsTag) >= 0
}

// Hidden returns only the decoded payload of s. Everything that is not a tag
// character is dropped.
func Hidden(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if IsTag(r) {
			sb.WriteRune(r - Offset)
		}
	}
	return sb.String()
}

// Visible returns s with all tag characters removed.
func Visible(s string) string {
	return strings.Map(func(r rune) rune {
		if IsTag(r) {
			return -1
		}
		return r
	}, s)
}

func mapString(s string, fn func(rune) rune) string {
	var sb strings.Builder
	// ASCII grows from 1 to 4 bytes when encoded; decoding only shrinks.
	sb.Grow(len(s) * utf8.UTFMax)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			sb.WriteByte(s[i])
			i++
			continue
		}
		sb.WriteRune(fn(r))
		i += size
	}
	return sb.String()
}

func mapBytes(b []byte, fn func(rune) rune) []byte {
	out := make([]byte, 0, len(b)*utf8.UTFMax)
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, b[i])
			i++
			continue
		}
		out = utf8.AppendRune(out, fn(r))
		i += size
	}
	return out
}
