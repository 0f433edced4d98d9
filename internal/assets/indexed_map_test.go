package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexedAssetMapAssignsStableIndices(t *testing.T) {
	m := NewIndexedAssetMap[string]()
	idx0 := m.Put("stone", "Stone")
	idx1 := m.Put("dirt", "Dirt")
	require.Equal(t, int32(0), idx0)
	require.Equal(t, int32(1), idx1)
	require.Equal(t, int32(2), m.MaxID())
	require.Equal(t, 2, m.Len())
}

func TestIndexedAssetMapReinsertKeepsIndex(t *testing.T) {
	m := NewIndexedAssetMap[string]()
	first := m.Put("stone", "Stone")
	second := m.Put("stone", "Stone (renamed)")
	require.Equal(t, first, second)
	require.Equal(t, int32(1), m.MaxID())

	v, idx, ok := m.Get("stone")
	require.True(t, ok)
	require.Equal(t, first, idx)
	require.Equal(t, "Stone (renamed)", v)
}

func TestIndexedAssetMapGetByIndexAndMissingKey(t *testing.T) {
	m := NewIndexedAssetMap[string]()
	idx := m.Put("stone", "Stone")

	v, ok := m.GetByIndex(idx)
	require.True(t, ok)
	require.Equal(t, "Stone", v)

	_, ok = m.GetByIndex(99)
	require.False(t, ok)

	_, _, ok = m.Get("does-not-exist")
	require.False(t, ok)
}

func TestIndexedAssetMapAllOrdersByIndex(t *testing.T) {
	m := NewIndexedAssetMap[string]()
	m.Put("c", "C")
	m.Put("a", "A")
	m.Put("b", "B")

	entries := m.All()
	require.Len(t, entries, 3)
	for i, e := range entries {
		require.Equal(t, int32(i), e.Index)
	}
	require.Equal(t, "c", entries[0].Key)
	require.Equal(t, "a", entries[1].Key)
	require.Equal(t, "b", entries[2].Key)
}
