package world

// Block ids used by the flat-terrain generator. This core has no full
// block registry wired to world generation; these constants mirror the
// ids the BlockTypes asset load would conventionally assign
// (bedrock/stone/dirt/grass in external-id order, stone = 2).
const (
	BlockBedrock uint32 = 1
	BlockStone   uint32 = 2
	BlockDirt    uint32 = 3
	BlockGrass   uint32 = 4
)

// TintSource resolves a chunk column's surface tint. This core's
// resolution: tint defaults to DefaultTint unless an Environment asset
// assigned to the column carries a water tint, in which case that tint
// wins.
type TintSource interface {
	TintFor(environmentTag uint8) (argb uint32, ok bool)
}

// Layer is one y-range of the flat generator's fill table: every block
// with FromY <= y < ToY is set to Block.
type Layer struct {
	FromY, ToY int
	Block      uint32
}

// DefaultLayers is the built-in flat terrain: bedrock at y=0, stone for
// y in [1,60), dirt for y in [60,63), grass at y=63, air above.
var DefaultLayers = []Layer{
	{FromY: 0, ToY: 1, Block: BlockBedrock},
	{FromY: 1, ToY: 60, Block: BlockStone},
	{FromY: 60, ToY: 63, Block: BlockDirt},
	{FromY: 63, ToY: 64, Block: BlockGrass},
}

// GenerateChunk synthesizes a chunk from a layer fill table. Heightmap
// is fully recomputed at the end — layer fills are the bulk path and
// skip per-mutation maintenance.
func GenerateChunk(chunkX, chunkZ int32, layers []Layer, tints TintSource) *Chunk {
	c := NewChunk(chunkX, chunkZ)
	for _, l := range layers {
		for y := l.FromY; y < l.ToY; y++ {
			c.FillLayer(y, l.Block)
		}
	}
	c.RecomputeHeightmap()

	if tints != nil {
		for col := range c.Environment {
			if argb, ok := tints.TintFor(c.Environment[col]); ok {
				c.Tintmap[col] = argb
			}
		}
	}
	return c
}

// GenerateFlatChunk synthesizes a chunk from the built-in layer table.
func GenerateFlatChunk(chunkX, chunkZ int32, tints TintSource) *Chunk {
	return GenerateChunk(chunkX, chunkZ, DefaultLayers, tints)
}
