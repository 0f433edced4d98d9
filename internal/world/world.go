package world

import (
	"sync"

	"github.com/google/uuid"
)

// SpawnPoint is the world's default player entry location.
type SpawnPoint struct {
	X, Y, Z float32
}

// World is a lazily populated (chunk_x, chunk_z) -> Chunk mapping, plus
// a world UUID, a spawn point, and a flat-terrain generator.
// Chunk coordinates pack into a 64-bit key as (x<<32)|uint32(z).
type World struct {
	UUID  uuid.UUID
	Spawn SpawnPoint
	Tints TintSource

	// Layers is the generator's fill table; callers may replace it
	// before the first chunk is materialized (the world-settings file
	// does) but not after.
	Layers []Layer

	mu     sync.RWMutex
	chunks map[uint64]*Chunk
}

func New(tints TintSource) *World {
	return &World{
		UUID:   uuid.New(),
		Spawn:  SpawnPoint{X: 0, Y: 64, Z: 0},
		Tints:  tints,
		Layers: DefaultLayers,
		chunks: make(map[uint64]*Chunk),
	}
}

func packChunkKey(x, z int32) uint64 {
	return uint64(x)<<32 | uint64(uint32(z))
}

func unpackChunkKey(key uint64) (x, z int32) {
	return int32(key >> 32), int32(uint32(key))
}

// GetChunk returns the chunk at (x, z), synthesizing and inserting one
// via the flat-terrain generator on first access.
func (w *World) GetChunk(x, z int32) *Chunk {
	key := packChunkKey(x, z)

	w.mu.RLock()
	c, ok := w.chunks[key]
	w.mu.RUnlock()
	if ok {
		return c
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.chunks[key]; ok {
		return c
	}
	c = GenerateChunk(x, z, w.Layers, w.Tints)
	w.chunks[key] = c
	return c
}

// ChunksInRadius returns the (2r+1)^2 chunks in Chebyshev distance <= r
// of (cx, cz), materializing any missing ones.
func (w *World) ChunksInRadius(cx, cz int32, r int32) []*Chunk {
	out := make([]*Chunk, 0, (2*r+1)*(2*r+1))
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			out = append(out, w.GetChunk(cx+dx, cz+dz))
		}
	}
	return out
}

// Unload removes a chunk from the store; a subsequent GetChunk
// synthesizes it fresh.
func (w *World) Unload(x, z int32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.chunks, packChunkKey(x, z))
}
