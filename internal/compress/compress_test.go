package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	payload := []byte("the quick brown fox jumps over the lazy dog, repeated for compressibility, " +
		"the quick brown fox jumps over the lazy dog")
	compressed := c.EncodeIfFlagged(true, payload)
	require.NotEqual(t, payload, compressed)

	out, err := c.DecodeIfFlagged(true, compressed)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestEncodeIfFlaggedSkipsWhenNotFlagged(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	payload := []byte("uncompressed")
	require.Equal(t, payload, c.EncodeIfFlagged(false, payload))
}

func TestNoCompressOverride(t *testing.T) {
	t.Setenv("ZYTALE_NO_COMPRESS", "1")
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	require.True(t, c.Disabled())
	payload := []byte("verbatim when disabled")
	require.Equal(t, payload, c.EncodeIfFlagged(true, payload))
}
