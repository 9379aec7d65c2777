package tag

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

type enc struct{}

func (enc) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &runeMapper{fn: EncodeRune}}
}

func (enc) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &runeMapper{fn: DecodeRune}}
}

// Encoding exposes the tag mapping as a text encoding. Its encoder hides
// ASCII, its decoder reveals it.
var Encoding encoding.Encoding = enc{}

// NewEncoder returns a streaming encoder with the same output as Encode.
func NewEncoder() *encoding.Encoder { return Encoding.NewEncoder() }

// NewDecoder returns a streaming decoder with the same output as Decode.
func NewDecoder() *encoding.Decoder { return Encoding.NewDecoder() }

// runeMapper applies fn to each UTF-8 code point of the stream. Invalid bytes
// are copied through unchanged so the output matches Encode and Decode.
type runeMapper struct {
	transform.NopResetter
	fn func(rune) rune
}

func (m *runeMapper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			r := m.fn(rune(c))
			if r == rune(c) {
				dst[nDst] = c
				nDst++
				nSrc++
				continue
			}
			if nDst+utf8.RuneLen(r) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], r)
			nSrc++
			continue
		}

		if !utf8.FullRune(src[nSrc:]) && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size <= 1 {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r = m.fn(r)
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return nDst, nSrc, nil
}
