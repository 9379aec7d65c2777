package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birdayz/invis/pkg/tag"
)

func TestApply(t *testing.T) {
	out, err := Apply(TagCodec{}, ModeEncode, []byte("test"))
	require.NoError(t, err)
	require.Equal(t, tag.Encode("test"), string(out))

	back, err := Apply(TagCodec{}, ModeDecode, out)
	require.NoError(t, err)
	require.Equal(t, "test", string(back))

	_, err = Apply(TagCodec{}, Mode("rot13"), out)
	require.Error(t, err)
}
