package conn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/world"
)

// runJoinSequence streams the fixed packet order required for a
// newly-admitted player: identity, view radius, world join, game mode,
// entity seed, every chunk's three column blobs and ten sections across
// the configured view radius, then the player's own spawn entity.
func (c *Connection) runJoinSequence() error {
	if err := c.sendPacket(protocol.IDSetClientId, &protocol.SetClientIdPacket{ClientID: c.ClientID}); err != nil {
		return fmt.Errorf("join: set_client_id: %w", err)
	}

	radius := c.deps.Config.ViewRadius
	if err := c.sendPacket(protocol.IDViewRadius, &protocol.ViewRadiusPacket{Radius: radius}); err != nil {
		return fmt.Errorf("join: view_radius: %w", err)
	}

	var worldUUID [16]byte
	copy(worldUUID[:], c.deps.World.UUID[:])
	if err := c.sendPacket(protocol.IDJoinWorld, &protocol.JoinWorldPacket{Clear: true, Fade: false, WorldUUID: worldUUID}); err != nil {
		return fmt.Errorf("join: join_world: %w", err)
	}

	if err := c.sendPacket(protocol.IDSetGameMode, &protocol.SetGameModePacket{GameMode: 1}); err != nil {
		return fmt.Errorf("join: set_game_mode: %w", err)
	}

	if err := c.sendPacket(protocol.IDSetEntitySdd, &protocol.SetEntitySeedPacket{Seed: entitySeed()}); err != nil {
		return fmt.Errorf("join: set_entity_seed: %w", err)
	}

	spawnChunkX := int32(c.deps.World.Spawn.X) / 32
	spawnChunkZ := int32(c.deps.World.Spawn.Z) / 32
	chunks := c.deps.World.ChunksInRadius(spawnChunkX, spawnChunkZ, radius)
	sent := 0
	for _, chunk := range chunks {
		if err := c.sendChunk(chunk); err != nil {
			return fmt.Errorf("join: chunk (%d,%d): %w", chunk.ChunkX, chunk.ChunkZ, err)
		}
		sent++
	}
	// Progress is tracked locally only; the one WorldLoadProgress on
	// the wire was already sent when the asset burst finished.
	c.logf("terrain streamed: %d/%d chunks", sent, len(chunks))

	return c.sendSpawnEntity()
}

// sendChunk emits one chunk's three column blobs followed by its ten
// sections, in that order.
func (c *Connection) sendChunk(chunk *world.Chunk) error {
	if err := c.sendPacket(protocol.IDSetChunkHeightmap, &protocol.ColumnBlobPacket{
		ChunkX: chunk.ChunkX, ChunkZ: chunk.ChunkZ, Blob: chunk.HeightmapBytes(), HasBlob: true,
	}); err != nil {
		return err
	}
	if err := c.sendPacket(protocol.IDSetChunkTintmap, &protocol.ColumnBlobPacket{
		ChunkX: chunk.ChunkX, ChunkZ: chunk.ChunkZ, Blob: chunk.TintmapBytes(), HasBlob: true,
	}); err != nil {
		return err
	}
	if err := c.sendPacket(protocol.IDSetChunkEnvironment, &protocol.ColumnBlobPacket{
		ChunkX: chunk.ChunkX, ChunkZ: chunk.ChunkZ, Blob: chunk.EnvironmentBytes(), HasBlob: true,
	}); err != nil {
		return err
	}

	for y, section := range chunk.Sections {
		body := section.Encode()
		if err := c.sendPacket(protocol.IDSetChunk, &protocol.SetChunkPacket{
			ChunkX: chunk.ChunkX, SectionY: int32(y), ChunkZ: chunk.ChunkZ,
			SectionData: body, HasSectionData: true,
		}); err != nil {
			return err
		}
	}
	return nil
}

// sendSpawnEntity emits the player's own EntityAdd at the world spawn
// point with an identity orientation and zero velocity.
func (c *Connection) sendSpawnEntity() error {
	var entityID [16]byte
	id := uuid.New()
	copy(entityID[:], id[:])

	spawn := protocol.EntityState{
		Action:   protocol.EntityAdd,
		EntityID: entityID,
		X:        c.deps.World.Spawn.X,
		Y:        c.deps.World.Spawn.Y,
		Z:        c.deps.World.Spawn.Z,
		QW:       1,
	}
	return c.sendPacket(protocol.IDEntityUpdate, &protocol.EntityUpdatesPacket{Entities: []protocol.EntityState{spawn}})
}
