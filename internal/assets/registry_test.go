package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zytale/zytale-server/internal/protocol/assetfamily"
)

func TestRegistryLoadAllPopulatesFromArchive(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"Server/Audio/AudioCategories/ambient.json": `{"id":"ambient","volumeDb":0}`,
		"Server/BlockTypes/stone.json":               `{"id":1,"name":"stone"}`,
		"Server/BlockTypes/air.json":                 `{"id":0,"name":"air"}`,
	})
	archive, err := Open(path)
	require.NoError(t, err)
	defer archive.Close()

	r := NewRegistry()
	require.NoError(t, r.LoadAll(context.Background(), archive))

	require.Equal(t, 1, r.AudioCategories.Len())
	require.Equal(t, 2, r.BlockTypes.Len())

	v, _, ok := r.BlockTypes.Get("stone")
	require.True(t, ok)
	require.Equal(t, "stone", v.Name)
}

func TestRegistryBuildUpdatePayloadsIsExhaustive(t *testing.T) {
	r := NewRegistry()
	payloads := r.BuildUpdatePayloads()

	require.Len(t, payloads, len(assetfamily.Table))
	for _, f := range assetfamily.Table {
		body, ok := payloads[f.ID]
		require.True(t, ok, "missing payload for family %s", f.Name)
		require.NotEmpty(t, body)
	}
}

// TestRegistryEmptyBaselineBytes pins the exact empty-dictionary
// payloads: int-keyed AudioCategories is 7 bytes, string-keyed Trails
// is 3, offset-prologue Items is the bare 14-byte fixed block.
func TestRegistryEmptyBaselineBytes(t *testing.T) {
	payloads := NewRegistry().BuildUpdatePayloads()

	audio, ok := assetfamily.ByName("AudioCategories")
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, payloads[audio.ID])

	trails, ok := assetfamily.ByName("Trails")
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x00, 0x00}, payloads[trails.ID])

	items, ok := assetfamily.ByName("Items")
	require.True(t, ok)
	require.Len(t, payloads[items.ID], 14)

	for _, f := range assetfamily.Table {
		require.Equal(t, byte(0x01), payloads[f.ID][0], "family %s", f.Name)
		require.Equal(t, byte(assetfamily.UpdateInit), payloads[f.ID][1], "family %s", f.Name)
	}
}

func TestRegistryValidateSucceedsOnEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Validate())
}

func TestRegistryBuildUpdatePayloadsReflectsLoadedEntries(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"Server/Items/sword.json": `{"id":1,"name":"sword","maxStack":1}`,
	})
	archive, err := Open(path)
	require.NoError(t, err)
	defer archive.Close()

	r := NewRegistry()
	require.NoError(t, r.LoadAll(context.Background(), archive))
	payloads := r.BuildUpdatePayloads()

	var itemsFamily assetfamily.Family
	for _, f := range assetfamily.Table {
		if f.Name == "Items" {
			itemsFamily = f
		}
	}
	require.NotEmpty(t, itemsFamily.Name)

	_, _, count, _, err := itemsFamily.ParseEnvelope(payloads[itemsFamily.ID])
	require.NoError(t, err)
	require.Equal(t, uint32(1), count)
}
