package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptySectionEncodesToThreeBytes(t *testing.T) {
	s := NewSection()
	require.True(t, s.IsEmpty())
	require.Equal(t, []byte{byte(PaletteEmpty), byte(PaletteEmpty), byte(PaletteEmpty)}, s.Encode())
}

// TestSingleBlockFillYieldsTwoEntryPalette pins the palette baseline:
// filling one previously untouched section with one non-air block
// produces a 2-entry palette (the implicit air baseline plus the new
// block), not 1.
func TestSingleBlockFillYieldsTwoEntryPalette(t *testing.T) {
	s := NewSection()
	s.SetBlock(0, 0, 0, BlockStone)
	require.False(t, s.IsEmpty())
	require.Equal(t, BlockStone, s.BlockAt(0, 0, 0))
	require.Equal(t, uint32(AirBlockID), s.BlockAt(1, 0, 0))

	require.Equal(t, PaletteHalfByte, s.block.kind)
	require.Len(t, s.block.toExternal, 2)
	require.Equal(t, uint32(0), s.block.toExternal[0])
	require.Equal(t, BlockStone, s.block.toExternal[1])
}

// TestSectionWorkedExampleBytes pins the exact serialization of a
// section holding one stone block at local (0,0,0): half-byte palette
// type, a 2-entry palette body (air then stone), and a 16384-byte data
// array whose first nibble is internal index 1.
func TestSectionWorkedExampleBytes(t *testing.T) {
	s := NewSection()
	s.SetBlock(0, 0, 0, BlockStone)
	body := s.Encode()

	require.Equal(t, byte(PaletteHalfByte), body[0])
	require.Equal(t, []byte{0x02, 0x00}, body[1:3])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, body[3:10])
	require.Equal(t, []byte{0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00}, body[10:17])
	require.Equal(t, byte(0x01), body[17])
	// Data array plus the empty filler and rotation palettes.
	require.Len(t, body, 17+16384+2)
	require.Equal(t, []byte{0x00, 0x00}, body[len(body)-2:])
}

func TestPaletteWidensAcrossThresholds(t *testing.T) {
	s := NewSection()
	// 15 distinct non-air values plus the implicit air baseline = 16
	// unique entries, still within the half-byte range.
	for i := uint32(1); i <= 15; i++ {
		s.SetBlock(int(i), 0, 0, i)
	}
	require.Equal(t, PaletteHalfByte, s.block.kind)

	// The 16th distinct non-air value pushes the unique count to 17,
	// crossing into the byte range.
	s.SetBlock(16, 0, 0, 16)
	require.Equal(t, PaletteByte, s.block.kind)
	// Widening must preserve every previously written cell.
	for i := uint32(1); i <= 16; i++ {
		require.Equal(t, i, s.BlockAt(int(i), 0, 0))
	}

	for i := uint32(17); i <= 260; i++ {
		s.SetBlock(int(i%32), int(i/32)%32, int(i/1024), i)
	}
	require.Equal(t, PaletteShort, s.block.kind)
}

func TestSectionEncodeDecodeRoundTrip(t *testing.T) {
	s := NewSection()
	s.SetBlock(3, 4, 5, BlockStone)
	s.SetFiller(3, 4, 5, BlockDirt)
	s.SetRotation(3, 4, 5, 2)

	body := s.Encode()
	decoded, err := DecodeSection(body)
	require.NoError(t, err)
	require.Equal(t, BlockStone, decoded.BlockAt(3, 4, 5))
	require.Equal(t, BlockDirt, decoded.FillerAt(3, 4, 5))
	require.Equal(t, uint32(2), decoded.RotationAt(3, 4, 5))
	require.Equal(t, uint32(AirBlockID), decoded.BlockAt(0, 0, 0))
}

func TestFillLayerSkipsHeightmapMaintenance(t *testing.T) {
	c := NewChunk(0, 0)
	c.FillLayer(5, BlockStone)
	// FillLayer is the bulk path and does not touch the heightmap;
	// RecomputeHeightmap is required afterward.
	require.Equal(t, int16(0), c.Heightmap[0])
	c.RecomputeHeightmap()
	require.Equal(t, int16(5), c.Heightmap[0])
}

func TestSetBlockMaintainsHeightmapIncrementally(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(0, 10, 0, BlockStone)
	require.Equal(t, int16(10), c.Heightmap[0])

	c.SetBlock(0, 20, 0, BlockStone)
	require.Equal(t, int16(20), c.Heightmap[0])

	c.SetBlock(0, 20, 0, AirBlockID)
	require.Equal(t, int16(10), c.Heightmap[0])
}

func TestColumnBlobSizes(t *testing.T) {
	c := NewChunk(1, -1)
	require.Len(t, c.HeightmapBytes(), 2048)
	require.Len(t, c.TintmapBytes(), 4096)
	require.Len(t, c.EnvironmentBytes(), 1024)
}
