package tag

import (
	"strings"
	"unicode/utf8"
)

// Report summarizes what a piece of text carries.
type Report struct {
	Visible string `json:"visible"`
	Hidden  string `json:"hidden"`

	TagRunes     int `json:"tag_runes"`
	ASCIIRunes   int `json:"ascii_runes"`
	OtherRunes   int `json:"other_runes"`
	InvalidBytes int `json:"invalid_bytes"`

	// Spans are the byte ranges of consecutive tag characters in the input.
	Spans []Span `json:"spans,omitempty"`
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Inspect splits s into its visible and hidden parts and counts code points
// by class.
func Inspect(s string) Report {
	var (
		rep     Report
		visible strings.Builder
		hidden  strings.Builder
		open    = -1
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			rep.InvalidBytes++
			visible.WriteByte(s[i])
		case IsTag(r):
			rep.TagRunes++
			hidden.WriteRune(r - Offset)
			if open < 0 {
				open = i
			}
		case IsASCII(r):
			rep.ASCIIRunes++
			visible.WriteRune(r)
		default:
			rep.OtherRunes++
			visible.WriteRune(r)
		}
		if !IsTag(r) && open >= 0 {
			rep.Spans = append(rep.Spans, Span{Start: open, End: i})
			open = -1
		}
		i += size
	}
	if open >= 0 {
		rep.Spans = append(rep.Spans, Span{Start: open, End: len(s)})
	}
	rep.Visible = visible.String()
	rep.Hidden = hidden.String()
	return rep
}
