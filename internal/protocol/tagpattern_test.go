package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagPatternRoundTripLeaf(t *testing.T) {
	pat := &TagPattern{Type: 1, TagIndex: 42}
	buf := EncodeTagPattern(nil, pat, 0)
	require.Len(t, buf, tagPatternHeaderSize)

	got, err := DecodeTagPattern(buf, 0, 0)
	require.NoError(t, err)
	require.Equal(t, pat, got)
}

// TestTagPatternRoundTripNested covers the case where nested
// offsets must be relative to the outer variable-block origin: a tree
// with an operand list and a negated child, three levels deep.
func TestTagPatternRoundTripNested(t *testing.T) {
	pat := &TagPattern{
		Type:        2,
		TagIndex:    7,
		HasOperands: true,
		Operands: []TagPattern{
			{Type: 1, TagIndex: 10},
			{
				Type:        1,
				TagIndex:    11,
				HasNegated:  true,
				Negated:     &TagPattern{Type: 1, TagIndex: 12},
			},
		},
		HasNegated: true,
		Negated:    &TagPattern{Type: 3, TagIndex: 13},
	}

	buf := EncodeTagPattern(nil, pat, 0)
	require.Equal(t, tagPatternEncodedSize(pat), len(buf))

	got, err := DecodeTagPattern(buf, 0, 0)
	require.NoError(t, err)
	require.Equal(t, pat, got)
}

func TestTagPatternDecodeTruncated(t *testing.T) {
	pat := &TagPattern{Type: 1, TagIndex: 5}
	buf := EncodeTagPattern(nil, pat, 0)
	_, err := DecodeTagPattern(buf[:len(buf)-1], 0, 0)
	require.Error(t, err)
}
