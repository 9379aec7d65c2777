package codec

import (
	"fmt"

	"github.com/birdayz/invis/pkg/tag"
)

// Encoder converts visible text to its wire form.
type Encoder interface {
	Encode(in []byte) ([]byte, error)
}

// Decoder converts the wire form back to visible text.
type Decoder interface {
	Decode(in []byte) ([]byte, error)
}

// Codec is both directions of one transform.
type Codec interface {
	Encoder
	Decoder
}

// Mode selects which direction of a codec a command applies.
type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

// TagCodec hides printable ASCII in the Unicode tag block.
type TagCodec struct{}

func (TagCodec) Encode(in []byte) ([]byte, error) {
	return tag.EncodeBytes(in), nil
}

func (TagCodec) Decode(in []byte) ([]byte, error) {
	return tag.DecodeBytes(in), nil
}

// Apply runs the direction of c selected by mode.
func Apply(c Codec, mode Mode, in []byte) ([]byte, error) {
	switch mode {
	case ModeEncode:
		return c.Encode(in)
	case ModeDecode:
		return c.Decode(in)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
